package go_cipher

import (
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/salsa20/salsa"
)

// Stream Cipher Provider
//
// The stream family covers the counter-addressable stream ciphers and
// their detached-tag AEAD variants. There is no provider context: every
// call keys the primitive from the session's fixed 32 byte secret and, for
// the plain variants, resumes the keystream at the block counter carried
// in the composite IV. The AEAD variants take a bare nonce and always
// produce and verify a 16 byte tag.
//
// Two catalog variants have no backing here: the original 8 byte nonce
// chacha20 construction and the draft chacha20-poly1305. Their catalog
// rows stay, but sessions cannot initialize them and the registry leaves
// them out of the available set.

type streamVariant struct {
	nonceSize int
	aead      bool
	supported bool
}

var streamVariants = map[CipherMethod]*streamVariant{
	CIPHER_METHOD_STREAM_CHACHA20:                {nonceSize: 8},
	CIPHER_METHOD_STREAM_CHACHA20_IETF:           {nonceSize: 12, supported: true},
	CIPHER_METHOD_STREAM_XCHACHA20:               {nonceSize: 24, supported: true},
	CIPHER_METHOD_STREAM_SALSA20:                 {nonceSize: 8, supported: true},
	CIPHER_METHOD_STREAM_XSALSA20:                {nonceSize: 24, supported: true},
	CIPHER_METHOD_STREAM_CHACHA20_POLY1305:       {nonceSize: 8, aead: true},
	CIPHER_METHOD_STREAM_CHACHA20_POLY1305_IETF:  {nonceSize: 12, aead: true, supported: true},
	CIPHER_METHOD_STREAM_XCHACHA20_POLY1305_IETF: {nonceSize: 24, aead: true, supported: true},
}

// streamVariantSupported reports whether the stream family can actually
// serve the method in this build. The registry uses this as its
// availability probe.
func streamVariantSupported(m CipherMethod) bool {
	v := streamVariants[m]
	return v != nil && v.supported
}

type streamAdapter struct {
	variant *streamVariant
	method  CipherMethod
	secret  [STREAM_KEY_SIZE]byte
}

func newStreamAdapter(ci *CipherInterfaceInfo) (cipherAdapter, error) {
	v := streamVariants[ci.Method]
	if v == nil || !v.supported {
		return nil, ErrAlgorithmNotSupported
	}
	return &streamAdapter{variant: v, method: ci.Method}, nil
}

func (s *streamAdapter) init(c *Cipher) error {
	s.secret = [STREAM_KEY_SIZE]byte{}
	return nil
}

func (s *streamAdapter) close(c *Cipher) {
	s.secret = [STREAM_KEY_SIZE]byte{}
}

// setKey overwrites the secret's prefix with the caller's key material.
// Bits beyond the buffer capacity are dropped; a shorter key leaves the
// previous tail bytes in place, which is why init zero-fills the buffer.
func (s *streamAdapter) setKey(c *Cipher, key []byte, bits uint32) error {
	n := int(bits / 8)
	if n > STREAM_KEY_SIZE {
		n = STREAM_KEY_SIZE
	}
	if n > len(key) {
		n = len(key)
	}
	copy(s.secret[:], key[:n])
	return nil
}

func (s *streamAdapter) setIV(c *Cipher, iv []byte) error {
	if len(iv) != s.ivSize(c) {
		return ErrInvalidParameter
	}
	return nil
}

func (s *streamAdapter) encrypt(c *Cipher, input, output []byte) (int, error) {
	return s.xorStream(c, input, output)
}

func (s *streamAdapter) decrypt(c *Cipher, input, output []byte) (int, error) {
	return s.xorStream(c, input, output)
}

// xorStream generates the variant's keystream starting at the IV's block
// counter and XORs it over the input. Both directions are the same
// operation for these ciphers.
func (s *streamAdapter) xorStream(c *Cipher, input, output []byte) (int, error) {
	iv := parseStreamIV(c.iv)

	switch s.method {
	case CIPHER_METHOD_STREAM_CHACHA20_IETF, CIPHER_METHOD_STREAM_XCHACHA20:
		stream, err := chacha20.NewUnauthenticatedCipher(s.secret[:], iv.Nonce)
		if err != nil {
			return 0, NewOperationError(c.Name(), "keystream", ErrCipherOperation, err)
		}
		stream.SetCounter(uint32(iv.Counter))
		stream.XORKeyStream(output[:len(input)], input)
		return len(input), nil

	case CIPHER_METHOD_STREAM_SALSA20:
		var counterBlock [16]byte
		copy(counterBlock[:STREAM_COUNTER_SIZE], iv.Nonce)
		binary.LittleEndian.PutUint64(counterBlock[STREAM_COUNTER_SIZE:], iv.Counter)

		key := s.secret
		salsa.XORKeyStream(output[:len(input)], input, &counterBlock, &key)
		return len(input), nil

	case CIPHER_METHOD_STREAM_XSALSA20:
		var hNonce [16]byte
		copy(hNonce[:], iv.Nonce)

		var subKey [32]byte
		key := s.secret
		salsa.HSalsa20(&subKey, &hNonce, &key, &salsa.Sigma)

		var counterBlock [16]byte
		copy(counterBlock[:STREAM_COUNTER_SIZE], iv.Nonce[16:])
		binary.LittleEndian.PutUint64(counterBlock[STREAM_COUNTER_SIZE:], iv.Counter)

		salsa.XORKeyStream(output[:len(input)], input, &counterBlock, &subKey)
		return len(input), nil
	}

	return 0, ErrMustCallAEADAPI
}

func (s *streamAdapter) aeadFor(c *Cipher) (cipher.AEAD, error) {
	switch s.method {
	case CIPHER_METHOD_STREAM_CHACHA20_POLY1305_IETF:
		return chacha20poly1305.New(s.secret[:])
	case CIPHER_METHOD_STREAM_XCHACHA20_POLY1305_IETF:
		return chacha20poly1305.NewX(s.secret[:])
	default:
		return nil, ErrAlgorithmNotSupported
	}
}

func (s *streamAdapter) encryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	if len(tag) < STREAM_TAG_SIZE {
		return 0, ErrInsufficientTagCapacity
	}

	aead, err := s.aeadFor(c)
	if err != nil {
		return 0, err
	}

	sealed := aead.Seal(nil, c.iv, input, ad)
	n := len(input)
	copy(output, sealed[:n])
	copy(tag[:STREAM_TAG_SIZE], sealed[n:])
	return n, nil
}

func (s *streamAdapter) decryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	if len(tag) < STREAM_TAG_SIZE {
		return 0, ErrInsufficientTagCapacity
	}

	aead, err := s.aeadFor(c)
	if err != nil {
		return 0, err
	}

	ct := make([]byte, 0, len(input)+STREAM_TAG_SIZE)
	ct = append(ct, input...)
	ct = append(ct, tag[:STREAM_TAG_SIZE]...)

	plain, err := aead.Open(nil, c.iv, ct, ad)
	if err != nil {
		return 0, NewOperationError(c.Name(), "aead decrypt", ErrCipherOperation, err)
	}
	copy(output, plain)
	return len(plain), nil
}

func (s *streamAdapter) ivSize(c *Cipher) int {
	if s.variant.aead {
		return s.variant.nonceSize
	}
	return STREAM_COUNTER_SIZE + s.variant.nonceSize
}

func (s *streamAdapter) keyBits(c *Cipher) uint32 {
	return STREAM_KEY_SIZE * 8
}

func (s *streamAdapter) blockSize(c *Cipher) int {
	return 1
}
