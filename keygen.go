package go_cipher

import (
	"crypto/sha256"

	"go.step.sm/crypto/randutil"
	"golang.org/x/crypto/pbkdf2"
)

// Key and IV generation helpers.
//
// Sizes come from the catalog: a probe session is initialized for the
// algorithm and asked for its key and IV sizes, so generated material
// always matches what SetKey and SetIV will accept for that name. The
// probe requests no direction, so no transform state is allocated.

// keyDerivationIterations is the PBKDF2 work factor for DeriveKey.
// Changing it changes every derived key.
const keyDerivationIterations = 100000

// algorithmSizes probes the catalog for the key and IV sizes of name.
func algorithmSizes(name string) (keyBytes, ivBytes int, err error) {
	probe := NewCipher()
	if err := probe.Init(name, 0); err != nil {
		return 0, 0, err
	}
	defer probe.Close()

	return int(probe.KeyBits() / 8), probe.IVSize(), nil
}

// GenerateKey returns a fresh random key sized for the named algorithm.
// Fails with ErrAlgorithmNotSupported when the name cannot be resolved to
// a usable backend.
func GenerateKey(name string) ([]byte, error) {
	keyBytes, _, err := algorithmSizes(name)
	if err != nil {
		return nil, err
	}

	key, err := randutil.Salt(keyBytes)
	if err != nil {
		return nil, NewOperationError(name, "random generation", ErrAllocationFailure, err)
	}
	return key, nil
}

// GenerateIV returns a fresh random IV sized for the named algorithm.
// Algorithms that take no IV yield an empty slice. For the plain stream
// family the generated IV covers the whole composite layout, counter
// prefix included; callers resuming a stream mid-way should overwrite the
// counter with EncodeStreamIV.
func GenerateIV(name string) ([]byte, error) {
	_, ivBytes, err := algorithmSizes(name)
	if err != nil {
		return nil, err
	}
	if ivBytes == 0 {
		return []byte{}, nil
	}

	iv, err := randutil.Salt(ivBytes)
	if err != nil {
		return nil, NewOperationError(name, "random generation", ErrAllocationFailure, err)
	}
	return iv, nil
}

// DeriveKey derives a deterministic key for the named algorithm from a
// passphrase and salt using PBKDF2-SHA256. The same passphrase, salt and
// algorithm always produce the same key, which makes it suitable for
// passphrase-protected files; prefer GenerateKey wherever key material
// can be stored.
func DeriveKey(name string, passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrInvalidParameter
	}

	keyBytes, _, err := algorithmSizes(name)
	if err != nil {
		return nil, err
	}

	return pbkdf2.Key(passphrase, salt, keyDerivationIterations, keyBytes, sha256.New), nil
}
