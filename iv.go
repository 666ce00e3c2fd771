package go_cipher

import "encoding/binary"

// Stream IV Layout
//
// The stream family addresses its keystream through a composite IV: an
// 8 byte little-endian block counter followed by the variant's nonce.
// Reported IV sizes for the plain stream ciphers include the counter
// prefix; the AEAD variants take a bare nonce with no counter.

// StreamIV is the decoded form of a composite stream IV.
type StreamIV struct {
	Counter uint64
	Nonce   []byte
}

// parseStreamIV splits a raw stream IV into its counter prefix and nonce.
// An IV shorter than the counter prefix yields whatever bytes are present
// in the low positions of Counter and an empty nonce. The returned nonce
// aliases iv.
func parseStreamIV(iv []byte) StreamIV {
	var s StreamIV
	if len(iv) >= STREAM_COUNTER_SIZE {
		s.Counter = binary.LittleEndian.Uint64(iv)
		s.Nonce = iv[STREAM_COUNTER_SIZE:]
		return s
	}

	for i, b := range iv {
		s.Counter |= uint64(b) << (8 * i)
	}
	return s
}

// EncodeStreamIV assembles a composite stream IV from a block counter and
// a nonce. It is the inverse of the split the stream provider performs
// before keystream generation.
func EncodeStreamIV(counter uint64, nonce []byte) []byte {
	iv := make([]byte, STREAM_COUNTER_SIZE+len(nonce))
	binary.LittleEndian.PutUint64(iv, counter)
	copy(iv[STREAM_COUNTER_SIZE:], nonce)
	return iv
}
