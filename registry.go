package go_cipher

import (
	"strings"
	"sync"
)

// Algorithm Catalog
//
// The catalog maps unified lowercase algorithm names to the backend family
// and canonical provider name that implement them. Resolution is case
// insensitive and returns the first matching entry, so when two backend
// families serve the same unified name the earlier row wins.

// CipherInterfaceInfo describes one entry of the algorithm catalog: the
// unified lookup name, the backend method implementing it, the canonical
// name the generic provider knows the algorithm by, and behavior flags.
type CipherInterfaceInfo struct {
	Name          string       // unified lowercase name, e.g. "aes-256-cbc"
	Method        CipherMethod // backend family
	CanonicalName string       // provider name, empty for built-in methods
	Flags         CipherFlags
}

// IsAEAD returns true if the algorithm authenticates its output and must be
// driven through EncryptAEAD()/DecryptAEAD().
func (ci *CipherInterfaceInfo) IsAEAD() bool {
	return ci.Flags&CIPHER_FLAG_AEAD != 0
}

// hasVariableIV returns true if the provider accepts IVs of any length for
// this algorithm instead of one fixed size.
func (ci *CipherInterfaceInfo) hasVariableIV() bool {
	return ci.Flags&CIPHER_FLAG_VARIABLE_IV_LEN != 0
}

const cipherFlagNoPadding = CIPHER_FLAG_ENCRYPT_NO_PADDING | CIPHER_FLAG_DECRYPT_NO_PADDING

// supportedCiphers is the static algorithm catalog. Order matters: the
// resolver takes the first match, and GetAllCipherNames() reports names in
// this order. "chacha20" and "chacha20-poly1305-ietf" each have a generic
// row ahead of their stream family row; "chacha20-poly1305" without the
// ietf suffix is the draft stream construction only.
var supportedCiphers = []CipherInterfaceInfo{
	{Name: "xxtea", Method: CIPHER_METHOD_XXTEA},

	{Name: "rc4", Method: CIPHER_METHOD_GENERIC, CanonicalName: "ARC4-128"},

	{Name: "aes-128-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-128-CFB128"},
	{Name: "aes-192-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-192-CFB128"},
	{Name: "aes-256-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-256-CFB128"},
	{Name: "aes-128-ctr", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-128-CTR"},
	{Name: "aes-192-ctr", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-192-CTR"},
	{Name: "aes-256-ctr", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-256-CTR"},
	{Name: "aes-128-ecb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-128-ECB", Flags: cipherFlagNoPadding},
	{Name: "aes-192-ecb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-192-ECB", Flags: cipherFlagNoPadding},
	{Name: "aes-256-ecb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-256-ECB", Flags: cipherFlagNoPadding},
	{Name: "aes-128-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-128-CBC", Flags: cipherFlagNoPadding},
	{Name: "aes-192-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-192-CBC", Flags: cipherFlagNoPadding},
	{Name: "aes-256-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-256-CBC", Flags: cipherFlagNoPadding},

	{Name: "des-ecb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-ECB", Flags: cipherFlagNoPadding},
	{Name: "des-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-CBC", Flags: cipherFlagNoPadding},
	{Name: "des-ede", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-EDE-ECB", Flags: cipherFlagNoPadding},
	{Name: "des-ede-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-EDE-CBC", Flags: cipherFlagNoPadding},
	{Name: "des-ede3", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-EDE3-ECB", Flags: cipherFlagNoPadding},
	{Name: "des-ede3-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "DES-EDE3-CBC", Flags: cipherFlagNoPadding},

	{Name: "bf-cbc", Method: CIPHER_METHOD_GENERIC, CanonicalName: "BLOWFISH-CBC", Flags: cipherFlagNoPadding},
	{Name: "bf-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "BLOWFISH-CFB64"},

	{Name: "camellia-128-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "CAMELLIA-128-CFB128"},
	{Name: "camellia-192-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "CAMELLIA-192-CFB128"},
	{Name: "camellia-256-cfb", Method: CIPHER_METHOD_GENERIC, CanonicalName: "CAMELLIA-256-CFB128"},

	{Name: "chacha20", Method: CIPHER_METHOD_GENERIC, CanonicalName: "CHACHA20"},
	{Name: "chacha20", Method: CIPHER_METHOD_STREAM_CHACHA20},
	{Name: "chacha20-ietf", Method: CIPHER_METHOD_STREAM_CHACHA20_IETF},
	{Name: "xchacha20", Method: CIPHER_METHOD_STREAM_XCHACHA20},
	{Name: "salsa20", Method: CIPHER_METHOD_STREAM_SALSA20},
	{Name: "xsalsa20", Method: CIPHER_METHOD_STREAM_XSALSA20},

	{Name: "aes-128-gcm", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-128-GCM", Flags: CIPHER_FLAG_AEAD | CIPHER_FLAG_VARIABLE_IV_LEN},
	{Name: "aes-192-gcm", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-192-GCM", Flags: CIPHER_FLAG_AEAD | CIPHER_FLAG_VARIABLE_IV_LEN},
	{Name: "aes-256-gcm", Method: CIPHER_METHOD_GENERIC, CanonicalName: "AES-256-GCM", Flags: CIPHER_FLAG_AEAD | CIPHER_FLAG_VARIABLE_IV_LEN},
	{Name: "chacha20-poly1305-ietf", Method: CIPHER_METHOD_GENERIC, CanonicalName: "CHACHA20-POLY1305", Flags: CIPHER_FLAG_AEAD | CIPHER_FLAG_VARIABLE_IV_LEN},

	{Name: "chacha20-poly1305", Method: CIPHER_METHOD_STREAM_CHACHA20_POLY1305, Flags: CIPHER_FLAG_AEAD},
	{Name: "chacha20-poly1305-ietf", Method: CIPHER_METHOD_STREAM_CHACHA20_POLY1305_IETF, Flags: CIPHER_FLAG_AEAD},
	{Name: "xchacha20-poly1305-ietf", Method: CIPHER_METHOD_STREAM_XCHACHA20_POLY1305_IETF, Flags: CIPHER_FLAG_AEAD},
}

// resolveCipherInterface returns the first catalog entry whose unified name
// matches case insensitively, or nil when the name is unknown. Callers must
// treat the result as read-only.
func resolveCipherInterface(name string) *CipherInterfaceInfo {
	for i := range supportedCiphers {
		if strings.EqualFold(supportedCiphers[i].Name, name) {
			return &supportedCiphers[i]
		}
	}
	return nil
}

// CipherInfo returns a copy of the catalog entry the given name resolves
// to. The second return value is false when the name is not in the catalog.
// Presence in the catalog does not imply the backend is available; use
// GetAllCipherNames() or probe with Init() for that.
func CipherInfo(name string) (CipherInterfaceInfo, bool) {
	ci := resolveCipherInterface(name)
	if ci == nil {
		return CipherInterfaceInfo{}, false
	}
	return *ci, true
}

var (
	cipherNamesOnce sync.Once
	cipherNames     []string
)

// GetAllCipherNames returns the unified names of every catalog algorithm
// whose backend is present in this build. Built-in algorithms are always
// listed, generic algorithms are listed when the provider knows their
// canonical name, and stream algorithms are listed when their variant is
// supported. The list preserves catalog order and is not deduplicated: a
// name served by two live backend families appears once per family. The
// result is computed once; every call returns a fresh copy.
func GetAllCipherNames() []string {
	cipherNamesOnce.Do(func() {
		for i := range supportedCiphers {
			ci := &supportedCiphers[i]
			switch {
			case ci.Method <= CIPHER_METHOD_INNER:
				cipherNames = append(cipherNames, ci.Name)
			case ci.Method.IsStream():
				if streamVariantSupported(ci.Method) {
					cipherNames = append(cipherNames, ci.Name)
				}
			default:
				if providerHasCipher(ci.CanonicalName) {
					cipherNames = append(cipherNames, ci.Name)
				}
			}
		}
		Debug("cipher catalog: %d of %d algorithms available", len(cipherNames), len(supportedCiphers))
	})

	out := make([]string, len(cipherNames))
	copy(out, cipherNames)
	return out
}
