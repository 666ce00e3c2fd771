package go_cipher

// Cipher Catalog Constants
//
// This file contains the constants that describe the unified cipher catalog:
// backend method identifiers, behavior flags and transform directions. The
// catalog gives every supported algorithm a single lowercase lookup name
// (for example "aes-256-cbc" or "chacha20-ietf") regardless of which backend
// family implements it.
//
// Note: This library focuses solely on symmetric transforms. Key exchange,
// signatures and password-based key derivation schemes are intentionally NOT
// defined here as they are separate concerns built on top of the cipher
// layer, not part of the cipher catalog itself.

// Library Constants
const (
	CIPHER_LIB_VERSION = "0.3.2"
)

// CipherMethod identifies the backend family that implements an algorithm.
//
// Methods are ordered so that range checks select the family:
//   - (CIPHER_METHOD_INVALID, CIPHER_METHOD_INNER]  built-in fallback ciphers
//   - [CIPHER_METHOD_GENERIC, ...)                  backed by a provider
//   - [CIPHER_METHOD_STREAM, ...)                   stream/AEAD provider family
//
// CIPHER_METHOD_INNER and CIPHER_METHOD_STREAM are boundary markers; no
// catalog entry uses them directly.
type CipherMethod uint8

const (
	CIPHER_METHOD_INVALID CipherMethod = iota
	CIPHER_METHOD_XXTEA
	CIPHER_METHOD_INNER
	CIPHER_METHOD_GENERIC
	CIPHER_METHOD_STREAM
	CIPHER_METHOD_STREAM_CHACHA20
	CIPHER_METHOD_STREAM_CHACHA20_IETF
	CIPHER_METHOD_STREAM_XCHACHA20
	CIPHER_METHOD_STREAM_SALSA20
	CIPHER_METHOD_STREAM_XSALSA20
	CIPHER_METHOD_STREAM_CHACHA20_POLY1305
	CIPHER_METHOD_STREAM_CHACHA20_POLY1305_IETF
	CIPHER_METHOD_STREAM_XCHACHA20_POLY1305_IETF
)

// CipherFlags carries per-algorithm behavior switches consumed by the
// session layer and the provider adapters.
type CipherFlags uint32

const (
	CIPHER_FLAG_NONE               CipherFlags = 0x0000
	CIPHER_FLAG_NO_FINISH          CipherFlags = 0x0001
	CIPHER_FLAG_AEAD               CipherFlags = 0x0010
	CIPHER_FLAG_VARIABLE_IV_LEN    CipherFlags = 0x0020
	CIPHER_FLAG_AEAD_SET_LEN_FIRST CipherFlags = 0x0040
	CIPHER_FLAG_DECRYPT_NO_PADDING CipherFlags = 0x0100
	CIPHER_FLAG_ENCRYPT_NO_PADDING CipherFlags = 0x0200
)

// CipherMode selects the transform direction at session initialization.
// A mode of zero configures keys and IVs without binding a direction.
type CipherMode uint8

const (
	CIPHER_MODE_ENCRYPT CipherMode = 0x01
	CIPHER_MODE_DECRYPT CipherMode = 0x02
)

// Fallback and stream family size constants
const (
	XXTEA_KEY_SIZE      = 16
	XXTEA_BLOCK_SIZE    = 4
	STREAM_KEY_SIZE     = 32
	STREAM_COUNTER_SIZE = 8
	STREAM_TAG_SIZE     = 16
)

// Logger Level Constants
const (
	PROTOCOL = 1 << 0
	LOGIC    = 1 << 1

	DEBUG   = 1 << 4
	INFO    = 1 << 5
	WARNING = 1 << 6
	ERROR   = 1 << 7
	FATAL   = 1 << 8

	REGISTRY    = 1 << 9
	CIPHER      = 1 << 10
	PROVIDER    = 1 << 11
	STREAM      = 1 << 12
	CRYPTO      = 1 << 13
	AEAD        = 1 << 14
	KEYGEN      = 1 << 15
	GLOBAL      = 1 << 16
	METRICS     = 1 << 17
	TEST        = 1 << 18
	CONFIG_FILE = 1 << 19
	VERSION     = 1 << 20

	TAG_MASK       = 0x0000000f
	LEVEL_MASK     = 0x000001f0
	COMPONENT_MASK = 0xfffffe00

	ALL = 0xffffffff
)

// IsStream returns true if the method belongs to the stream/AEAD provider
// family (counter-addressable stream ciphers and their AEAD variants).
func (m CipherMethod) IsStream() bool {
	return m >= CIPHER_METHOD_STREAM
}

// IsProviderBacked returns true if the method requires a provider context,
// as opposed to the built-in fallback ciphers that run without one.
func (m CipherMethod) IsProviderBacked() bool {
	return m >= CIPHER_METHOD_GENERIC
}

// String returns the backend family name for diagnostics.
func (m CipherMethod) String() string {
	switch {
	case m == CIPHER_METHOD_XXTEA:
		return "xxtea"
	case m == CIPHER_METHOD_GENERIC:
		return "generic"
	case m.IsStream():
		return "stream"
	default:
		return "invalid"
	}
}
