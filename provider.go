package go_cipher

// Provider Adapter Layer
//
// Each backend family implements cipherAdapter so the session dispatches
// every operation through a single indirection instead of switching on the
// method in every call. Adapters hold the family specific state: the
// fallback key schedule, the generic provider's per-direction contexts, or
// the stream family's fixed key buffer. Adapters never check session
// state; the session validates preconditions before delegating.

type cipherAdapter interface {
	// init allocates family state for the directions requested in c.mode.
	// On failure no partial state may remain.
	init(c *Cipher) error

	// close releases family state. Must tolerate repeated calls.
	close(c *Cipher)

	setKey(c *Cipher, key []byte, bits uint32) error

	// setIV validates the IV length for this family. The session owns the
	// IV buffer and replaces it wholesale after a nil return.
	setIV(c *Cipher, iv []byte) error

	encrypt(c *Cipher, input, output []byte) (int, error)
	decrypt(c *Cipher, input, output []byte) (int, error)
	encryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error)
	decryptAEAD(c *Cipher, input, output, ad, tag []byte) (int, error)

	ivSize(c *Cipher) int
	keyBits(c *Cipher) uint32
	blockSize(c *Cipher) int
}

// newAdapterForMethod returns a fresh adapter for the backend family of
// the resolved catalog entry. Entries whose backend is not present in this
// build fail here with ErrAlgorithmNotSupported.
func newAdapterForMethod(ci *CipherInterfaceInfo) (cipherAdapter, error) {
	switch {
	case ci.Method == CIPHER_METHOD_XXTEA:
		return &xxteaAdapter{}, nil
	case ci.Method == CIPHER_METHOD_GENERIC:
		return newGenericAdapter(ci)
	case ci.Method.IsStream():
		return newStreamAdapter(ci)
	default:
		return nil, ErrAlgorithmNotSupported
	}
}
