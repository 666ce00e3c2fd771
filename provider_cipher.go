package go_cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"encoding/binary"
	"errors"

	"github.com/aead/camellia"
	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
)

// Generic Cipher Provider
//
// The generic provider serves every catalog entry that carries a canonical
// name. It keeps one context per requested direction; a context holds the
// keyed primitive and survives across calls, so keystream ciphers without
// an IV (RC4) continue where the previous call stopped, while IV driven
// modes rebind the session IV immediately before every transform and
// therefore restart from it on each call.

type providerMode uint8

const (
	providerModeECB providerMode = iota
	providerModeCBC
	providerModeCFB
	providerModeCTR
	providerModeRC4
	providerModeChaCha20
	providerModeGCM
	providerModeChaChaPoly
)

// providerCipherType describes one canonical algorithm the generic
// provider recognizes: fixed key and IV lengths in bytes, the block size
// the algorithm reports (keystream style modes report 1), and the keyed
// primitive constructor where the mode is built on a block cipher.
type providerCipherType struct {
	keyLen    int
	ivLen     int
	blockSize int
	mode      providerMode
	newBlock  func(key []byte) (cipher.Block, error)
}

func newDESEDE2Cipher(key []byte) (cipher.Block, error) {
	// Two-key triple DES: K1 K2 K1.
	k := make([]byte, 24)
	copy(k, key[:16])
	copy(k[16:], key[:8])
	return des.NewTripleDESCipher(k)
}

func newBlowfishCipher(key []byte) (cipher.Block, error) {
	return blowfish.NewCipher(key)
}

var providerCipherTypes = map[string]*providerCipherType{
	"ARC4-128": {keyLen: 16, ivLen: 0, blockSize: 1, mode: providerModeRC4},

	"AES-128-CFB128": {keyLen: 16, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: aes.NewCipher},
	"AES-192-CFB128": {keyLen: 24, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: aes.NewCipher},
	"AES-256-CFB128": {keyLen: 32, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: aes.NewCipher},
	"AES-128-CTR":    {keyLen: 16, ivLen: 16, blockSize: 1, mode: providerModeCTR, newBlock: aes.NewCipher},
	"AES-192-CTR":    {keyLen: 24, ivLen: 16, blockSize: 1, mode: providerModeCTR, newBlock: aes.NewCipher},
	"AES-256-CTR":    {keyLen: 32, ivLen: 16, blockSize: 1, mode: providerModeCTR, newBlock: aes.NewCipher},
	"AES-128-ECB":    {keyLen: 16, ivLen: 0, blockSize: 16, mode: providerModeECB, newBlock: aes.NewCipher},
	"AES-192-ECB":    {keyLen: 24, ivLen: 0, blockSize: 16, mode: providerModeECB, newBlock: aes.NewCipher},
	"AES-256-ECB":    {keyLen: 32, ivLen: 0, blockSize: 16, mode: providerModeECB, newBlock: aes.NewCipher},
	"AES-128-CBC":    {keyLen: 16, ivLen: 16, blockSize: 16, mode: providerModeCBC, newBlock: aes.NewCipher},
	"AES-192-CBC":    {keyLen: 24, ivLen: 16, blockSize: 16, mode: providerModeCBC, newBlock: aes.NewCipher},
	"AES-256-CBC":    {keyLen: 32, ivLen: 16, blockSize: 16, mode: providerModeCBC, newBlock: aes.NewCipher},

	"DES-ECB":      {keyLen: 8, ivLen: 0, blockSize: 8, mode: providerModeECB, newBlock: des.NewCipher},
	"DES-CBC":      {keyLen: 8, ivLen: 8, blockSize: 8, mode: providerModeCBC, newBlock: des.NewCipher},
	"DES-EDE-ECB":  {keyLen: 16, ivLen: 0, blockSize: 8, mode: providerModeECB, newBlock: newDESEDE2Cipher},
	"DES-EDE-CBC":  {keyLen: 16, ivLen: 8, blockSize: 8, mode: providerModeCBC, newBlock: newDESEDE2Cipher},
	"DES-EDE3-ECB": {keyLen: 24, ivLen: 0, blockSize: 8, mode: providerModeECB, newBlock: des.NewTripleDESCipher},
	"DES-EDE3-CBC": {keyLen: 24, ivLen: 8, blockSize: 8, mode: providerModeCBC, newBlock: des.NewTripleDESCipher},

	"BLOWFISH-CBC":   {keyLen: 16, ivLen: 8, blockSize: 8, mode: providerModeCBC, newBlock: newBlowfishCipher},
	"BLOWFISH-CFB64": {keyLen: 16, ivLen: 8, blockSize: 1, mode: providerModeCFB, newBlock: newBlowfishCipher},

	"CAMELLIA-128-CFB128": {keyLen: 16, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: camellia.NewCipher},
	"CAMELLIA-192-CFB128": {keyLen: 24, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: camellia.NewCipher},
	"CAMELLIA-256-CFB128": {keyLen: 32, ivLen: 16, blockSize: 1, mode: providerModeCFB, newBlock: camellia.NewCipher},

	"CHACHA20": {keyLen: 32, ivLen: 16, blockSize: 1, mode: providerModeChaCha20},

	"AES-128-GCM":       {keyLen: 16, ivLen: 12, blockSize: 1, mode: providerModeGCM, newBlock: aes.NewCipher},
	"AES-192-GCM":       {keyLen: 24, ivLen: 12, blockSize: 1, mode: providerModeGCM, newBlock: aes.NewCipher},
	"AES-256-GCM":       {keyLen: 32, ivLen: 12, blockSize: 1, mode: providerModeGCM, newBlock: aes.NewCipher},
	"CHACHA20-POLY1305": {keyLen: 32, ivLen: 12, blockSize: 1, mode: providerModeChaChaPoly},
}

// providerHasCipher reports whether the generic provider recognizes the
// canonical name. The registry uses this as its availability probe.
func providerHasCipher(canonical string) bool {
	_, ok := providerCipherTypes[canonical]
	return ok
}

var (
	errKeyNotSet          = errors.New("key not set")
	errMisalignedInput    = errors.New("input length is not a multiple of the block size")
	errBadIVLength        = errors.New("iv length does not match the cipher")
	errTagTooLong         = errors.New("tag longer than the authentication tag size")
	errTagRequired        = errors.New("authentication tag required")
	errUnsupportedTagSize = errors.New("unsupported tag size for this nonce length")
)

// evpContext is the per-direction state of a generic provider session.
// The keyed primitive persists across calls; IV bound state does not.
type evpContext struct {
	key   []byte
	block cipher.Block
	rc4   *rc4.Cipher
}

type genericAdapter struct {
	typ *providerCipherType
	enc *evpContext
	dec *evpContext
}

// newGenericAdapter resolves the canonical name against the provider's
// table. An unknown canonical name means the algorithm is not supported by
// this build even though the catalog carries it.
func newGenericAdapter(ci *CipherInterfaceInfo) (cipherAdapter, error) {
	typ := providerCipherTypes[ci.CanonicalName]
	if typ == nil {
		return nil, ErrAlgorithmNotSupported
	}
	return &genericAdapter{typ: typ}, nil
}

func (g *genericAdapter) init(c *Cipher) error {
	if c.mode&CIPHER_MODE_ENCRYPT != 0 {
		g.enc = &evpContext{}
	}
	if c.mode&CIPHER_MODE_DECRYPT != 0 {
		g.dec = &evpContext{}
	}
	return nil
}

func (g *genericAdapter) close(c *Cipher) {
	g.enc = nil
	g.dec = nil
}

// setKey validates the caller's key against the algorithm's fixed key
// length and keys every allocated direction. The caller may hand in more
// key material than needed; only the required prefix is used.
func (g *genericAdapter) setKey(c *Cipher, key []byte, bits uint32) error {
	required := g.typ.keyLen
	if int(bits/8) < required || len(key) < required {
		return ErrInvalidParameter
	}

	material := make([]byte, required)
	copy(material, key[:required])

	for _, ctx := range []*evpContext{g.enc, g.dec} {
		if ctx == nil {
			continue
		}
		ctx.key = material

		if g.typ.newBlock != nil {
			block, err := g.typ.newBlock(material)
			if err != nil {
				return NewOperationError(c.Name(), "set key", ErrCipherOperation, err)
			}
			ctx.block = block
		}
		if g.typ.mode == providerModeRC4 {
			stream, err := rc4.NewCipher(material)
			if err != nil {
				return NewOperationError(c.Name(), "set key", ErrCipherOperation, err)
			}
			ctx.rc4 = stream
		}
	}
	return nil
}

func (g *genericAdapter) setIV(c *Cipher, iv []byte) error {
	if c.info.hasVariableIV() {
		return nil
	}
	if len(iv) != g.typ.ivLen {
		return ErrInvalidParameter
	}
	return nil
}

func (g *genericAdapter) encrypt(c *Cipher, input, output []byte) (int, error) {
	if g.enc == nil {
		return 0, ErrCipherDisabled
	}
	return g.transform(c, g.enc, input, output, true)
}

func (g *genericAdapter) decrypt(c *Cipher, input, output []byte) (int, error) {
	if g.dec == nil {
		return 0, ErrCipherDisabled
	}
	return g.transform(c, g.dec, input, output, false)
}

// transform runs one non-AEAD provider call. IV driven modes rebind the
// session IV here, so every call restarts from the session's current IV;
// RC4 has no IV and its keystream continues across calls.
func (g *genericAdapter) transform(c *Cipher, ctx *evpContext, input, output []byte, encrypt bool) (int, error) {
	switch g.typ.mode {
	case providerModeRC4:
		if ctx.rc4 == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		ctx.rc4.XORKeyStream(output[:len(input)], input)
		return len(input), nil

	case providerModeECB:
		if ctx.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		bs := ctx.block.BlockSize()
		if len(input)%bs != 0 {
			return 0, NewOperationError(c.Name(), "finalize", ErrCipherOperation, errMisalignedInput)
		}
		for i := 0; i < len(input); i += bs {
			if encrypt {
				ctx.block.Encrypt(output[i:i+bs], input[i:i+bs])
			} else {
				ctx.block.Decrypt(output[i:i+bs], input[i:i+bs])
			}
		}
		return len(input), nil

	case providerModeCBC:
		if ctx.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		bs := ctx.block.BlockSize()
		if len(c.iv) != bs {
			return 0, NewOperationError(c.Name(), "set iv", ErrCipherOperationSetIV, errBadIVLength)
		}
		if len(input)%bs != 0 {
			return 0, NewOperationError(c.Name(), "finalize", ErrCipherOperation, errMisalignedInput)
		}
		var mode cipher.BlockMode
		if encrypt {
			mode = cipher.NewCBCEncrypter(ctx.block, c.iv)
		} else {
			mode = cipher.NewCBCDecrypter(ctx.block, c.iv)
		}
		mode.CryptBlocks(output[:len(input)], input)
		return len(input), nil

	case providerModeCFB:
		if ctx.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(c.iv) != ctx.block.BlockSize() {
			return 0, NewOperationError(c.Name(), "set iv", ErrCipherOperationSetIV, errBadIVLength)
		}
		var stream cipher.Stream
		if encrypt {
			stream = cipher.NewCFBEncrypter(ctx.block, c.iv)
		} else {
			stream = cipher.NewCFBDecrypter(ctx.block, c.iv)
		}
		stream.XORKeyStream(output[:len(input)], input)
		return len(input), nil

	case providerModeCTR:
		if ctx.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(c.iv) != ctx.block.BlockSize() {
			return 0, NewOperationError(c.Name(), "set iv", ErrCipherOperationSetIV, errBadIVLength)
		}
		stream := cipher.NewCTR(ctx.block, c.iv)
		stream.XORKeyStream(output[:len(input)], input)
		return len(input), nil

	case providerModeChaCha20:
		if ctx.key == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		// IV layout: 4 byte little-endian block counter, then a 12 byte
		// nonce, matching the generic provider's chacha20 convention.
		if len(c.iv) != g.typ.ivLen {
			return 0, NewOperationError(c.Name(), "set iv", ErrCipherOperationSetIV, errBadIVLength)
		}
		stream, err := chacha20.NewUnauthenticatedCipher(ctx.key, c.iv[4:])
		if err != nil {
			return 0, NewOperationError(c.Name(), "set iv", ErrCipherOperationSetIV, err)
		}
		stream.SetCounter(binary.LittleEndian.Uint32(c.iv))
		stream.XORKeyStream(output[:len(input)], input)
		return len(input), nil
	}

	return 0, ErrMustCallAEADAPI
}

// gcmForDecrypt picks the GCM construction able to verify a tag of the
// given length with the given nonce length. Truncated tags are only
// verifiable with the standard nonce size.
func gcmForDecrypt(block cipher.Block, nonceLen, tagLen int) (cipher.AEAD, error) {
	switch {
	case nonceLen == 12 && tagLen == STREAM_TAG_SIZE:
		return cipher.NewGCM(block)
	case nonceLen == 12 && tagLen >= 12 && tagLen < STREAM_TAG_SIZE:
		return cipher.NewGCMWithTagSize(block, tagLen)
	case tagLen == STREAM_TAG_SIZE:
		return cipher.NewGCMWithNonceSize(block, nonceLen)
	default:
		return nil, errUnsupportedTagSize
	}
}

func gcmForEncrypt(block cipher.Block, nonceLen int) (cipher.AEAD, error) {
	if nonceLen == 12 {
		return cipher.NewGCM(block)
	}
	return cipher.NewGCMWithNonceSize(block, nonceLen)
}

func (g *genericAdapter) encryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	if g.enc == nil {
		return 0, ErrCipherDisabled
	}

	var aead cipher.AEAD
	switch g.typ.mode {
	case providerModeGCM:
		if g.enc.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(tag) > STREAM_TAG_SIZE {
			return 0, NewOperationError(c.Name(), "get tag", ErrCipherOperation, errTagTooLong)
		}
		a, err := gcmForEncrypt(g.enc.block, len(c.iv))
		if err != nil {
			return 0, NewOperationError(c.Name(), "set iv length", ErrCipherOperation, err)
		}
		aead = a

	case providerModeChaChaPoly:
		if g.enc.key == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(c.iv) != chacha20poly1305.NonceSize {
			return 0, NewOperationError(c.Name(), "set iv length", ErrCipherOperation, errBadIVLength)
		}
		if len(tag) > STREAM_TAG_SIZE {
			return 0, NewOperationError(c.Name(), "get tag", ErrCipherOperation, errTagTooLong)
		}
		a, err := chacha20poly1305.New(g.enc.key)
		if err != nil {
			return 0, NewOperationError(c.Name(), "set key", ErrCipherOperation, err)
		}
		aead = a

	default:
		return 0, ErrMustNotCallAEADAPI
	}

	sealed := aead.Seal(nil, c.iv, input, ad)
	n := len(input)
	copy(output, sealed[:n])
	if len(tag) > 0 {
		copy(tag, sealed[n:])
	}
	return n, nil
}

func (g *genericAdapter) decryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	if g.dec == nil {
		return 0, ErrCipherDisabled
	}

	var aead cipher.AEAD
	switch g.typ.mode {
	case providerModeGCM:
		if g.dec.block == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(tag) == 0 {
			return 0, NewOperationError(c.Name(), "aead decrypt", ErrCipherOperation, errTagRequired)
		}
		a, err := gcmForDecrypt(g.dec.block, len(c.iv), len(tag))
		if err != nil {
			return 0, NewOperationError(c.Name(), "set tag", ErrCipherOperation, err)
		}
		aead = a

	case providerModeChaChaPoly:
		if g.dec.key == nil {
			return 0, NewOperationError(c.Name(), "update", ErrCipherOperation, errKeyNotSet)
		}
		if len(c.iv) != chacha20poly1305.NonceSize {
			return 0, NewOperationError(c.Name(), "set iv length", ErrCipherOperation, errBadIVLength)
		}
		if len(tag) == 0 {
			return 0, NewOperationError(c.Name(), "aead decrypt", ErrCipherOperation, errTagRequired)
		}
		if len(tag) != STREAM_TAG_SIZE {
			return 0, NewOperationError(c.Name(), "set tag", ErrCipherOperation, errUnsupportedTagSize)
		}
		a, err := chacha20poly1305.New(g.dec.key)
		if err != nil {
			return 0, NewOperationError(c.Name(), "set key", ErrCipherOperation, err)
		}
		aead = a

	default:
		return 0, ErrMustNotCallAEADAPI
	}

	ct := make([]byte, 0, len(input)+len(tag))
	ct = append(ct, input...)
	ct = append(ct, tag...)

	plain, err := aead.Open(nil, c.iv, ct, ad)
	if err != nil {
		return 0, NewOperationError(c.Name(), "aead decrypt", ErrCipherOperation, err)
	}
	copy(output, plain)
	return len(plain), nil
}

func (g *genericAdapter) ivSize(c *Cipher) int {
	return g.typ.ivLen
}

func (g *genericAdapter) keyBits(c *Cipher) uint32 {
	return uint32(g.typ.keyLen) * 8
}

func (g *genericAdapter) blockSize(c *Cipher) int {
	return g.typ.blockSize
}
