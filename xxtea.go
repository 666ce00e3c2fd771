package go_cipher

import "encoding/binary"

// XXTEA fallback cipher (corrected block TEA).
//
// This is the built-in method the catalog always carries, independent of
// any provider. It operates on 32-bit little-endian words with a 128 bit
// key. Input is zero padded up to the next word boundary and the padded
// length is what the transform reports, so decrypted output can be longer
// than the original plaintext; callers track the true length externally.
// Inputs shorter than two words pass through unchanged.

const xxteaDelta uint32 = 0x9e3779b9

func xxteaMX(sum, y, z, p, e uint32, key *[4]uint32) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (key[(p&3)^e] ^ z))
}

func xxteaEncode(v []uint32, key *[4]uint32) {
	n := uint32(len(v))
	if n < 2 {
		return
	}

	rounds := 6 + 52/n
	var sum uint32
	z := v[n-1]
	for ; rounds > 0; rounds-- {
		sum += xxteaDelta
		e := (sum >> 2) & 3
		var p uint32
		for p = 0; p < n-1; p++ {
			y := v[p+1]
			v[p] += xxteaMX(sum, y, z, p, e, key)
			z = v[p]
		}
		y := v[0]
		v[n-1] += xxteaMX(sum, y, z, p, e, key)
		z = v[n-1]
	}
}

func xxteaDecode(v []uint32, key *[4]uint32) {
	n := uint32(len(v))
	if n < 2 {
		return
	}

	rounds := 6 + 52/n
	sum := rounds * xxteaDelta
	y := v[0]
	for ; rounds > 0; rounds-- {
		e := (sum >> 2) & 3
		var p uint32
		for p = n - 1; p > 0; p-- {
			z := v[p-1]
			v[p] -= xxteaMX(sum, y, z, p, e, key)
			y = v[p]
		}
		z := v[n-1]
		v[0] -= xxteaMX(sum, y, z, p, e, key)
		y = v[0]
		sum -= xxteaDelta
	}
}

// xxteaWords zero pads b up to a word boundary and decodes it into
// little-endian 32-bit words.
func xxteaWords(b []byte) []uint32 {
	padded := make([]byte, (len(b)+XXTEA_BLOCK_SIZE-1)/XXTEA_BLOCK_SIZE*XXTEA_BLOCK_SIZE)
	copy(padded, b)

	words := make([]uint32, len(padded)/XXTEA_BLOCK_SIZE)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(padded[i*XXTEA_BLOCK_SIZE:])
	}
	return words
}

func xxteaBytes(dst []byte, words []uint32) int {
	for i, w := range words {
		binary.LittleEndian.PutUint32(dst[i*XXTEA_BLOCK_SIZE:], w)
	}
	return len(words) * XXTEA_BLOCK_SIZE
}

// xxteaAdapter implements the built-in fallback method. The key schedule
// is a fixed 16 byte secret, zero filled at session init and overwritten
// by set-key with silent truncation of longer key material.
type xxteaAdapter struct {
	secret [XXTEA_KEY_SIZE]byte
}

func (x *xxteaAdapter) init(c *Cipher) error {
	x.secret = [XXTEA_KEY_SIZE]byte{}
	return nil
}

func (x *xxteaAdapter) close(c *Cipher) {
	x.secret = [XXTEA_KEY_SIZE]byte{}
}

func (x *xxteaAdapter) setKey(c *Cipher, key []byte, bits uint32) error {
	x.secret = [XXTEA_KEY_SIZE]byte{}
	n := int(bits / 8)
	if n > XXTEA_KEY_SIZE {
		n = XXTEA_KEY_SIZE
	}
	if n > len(key) {
		n = len(key)
	}
	copy(x.secret[:], key[:n])
	return nil
}

func (x *xxteaAdapter) setIV(c *Cipher, iv []byte) error {
	// No IV in this construction; accepted for interface uniformity.
	return nil
}

func (x *xxteaAdapter) schedule() [4]uint32 {
	var k [4]uint32
	for i := range k {
		k[i] = binary.LittleEndian.Uint32(x.secret[i*4:])
	}
	return k
}

func (x *xxteaAdapter) encrypt(c *Cipher, input, output []byte) (int, error) {
	key := x.schedule()
	words := xxteaWords(input)
	xxteaEncode(words, &key)
	return xxteaBytes(output, words), nil
}

func (x *xxteaAdapter) decrypt(c *Cipher, input, output []byte) (int, error) {
	key := x.schedule()
	words := xxteaWords(input)
	xxteaDecode(words, &key)
	return xxteaBytes(output, words), nil
}

func (x *xxteaAdapter) encryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	return 0, ErrMustNotCallAEADAPI
}

func (x *xxteaAdapter) decryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error) {
	return 0, ErrMustNotCallAEADAPI
}

func (x *xxteaAdapter) ivSize(c *Cipher) int {
	return 0
}

func (x *xxteaAdapter) keyBits(c *Cipher) uint32 {
	return XXTEA_KEY_SIZE * 8
}

func (x *xxteaAdapter) blockSize(c *Cipher) int {
	return XXTEA_BLOCK_SIZE
}
