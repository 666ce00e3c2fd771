package go_cipher

import (
	"errors"
	"time"
)

// Cipher is a stateful session over one catalog algorithm. A session is
// constructed empty, bound to an algorithm and direction set by Init(),
// fed key and IV material, driven through the transform calls, and
// returned to its pre-init state by Close(). A session is in exactly one
// of two states: uninitialized (no algorithm resolved) or ready.
//
// A Cipher is not safe for concurrent use by multiple goroutines: key
// material, the IV buffer and provider state are mutated in place by
// every operation. Use one session per goroutine or synchronize
// externally. No operation blocks or performs I/O.
type Cipher struct {
	info    *CipherInterfaceInfo
	adapter cipherAdapter
	mode    CipherMode
	iv      []byte
	lastErr error
	metrics MetricsCollector
}

// NewCipher creates an uninitialized cipher session.
func NewCipher() *Cipher {
	return &Cipher{}
}

// SetMetricsCollector attaches a collector that receives operation counts,
// byte totals, latencies and error counts for this session. Pass nil to
// detach. Sessions without a collector skip all metrics work.
func (c *Cipher) SetMetricsCollector(m MetricsCollector) {
	c.metrics = m
}

// Name returns the unified algorithm name the session is bound to, or the
// empty string for an uninitialized session.
func (c *Cipher) Name() string {
	if c.info == nil {
		return ""
	}
	return c.info.Name
}

// Mode returns the direction bitmask requested at Init(), or zero for an
// uninitialized session.
func (c *Cipher) Mode() CipherMode {
	if c.info == nil {
		return 0
	}
	return c.mode
}

// LastError returns the retained diagnostic from the most recent
// operation: nil after a success or a clean status (not initialized,
// disabled direction), the returned error after a parameter or provider
// failure. Already-initialized, api-shape and tag-capacity guards leave
// the retained value untouched.
func (c *Cipher) LastError() error {
	return c.lastErr
}

// fail applies the retained-error policy to err, feeds the error counter
// when a collector is attached, and hands err back to the caller.
func (c *Cipher) fail(err error) error {
	switch {
	case errors.Is(err, ErrNotInitialized) || errors.Is(err, ErrCipherDisabled):
		c.lastErr = nil
	case errors.Is(err, ErrAlreadyInitialized) ||
		errors.Is(err, ErrMustCallAEADAPI) ||
		errors.Is(err, ErrMustNotCallAEADAPI) ||
		errors.Is(err, ErrInsufficientTagCapacity):
		// retained value untouched
	default:
		c.lastErr = err
	}

	if c.metrics != nil {
		c.metrics.IncrementError(metricsErrorLabel(err))
	}
	return err
}

// Init binds the session to the named algorithm and allocates provider
// state for the requested directions. mode is a bitmask of
// CIPHER_MODE_ENCRYPT and CIPHER_MODE_DECRYPT; the directions are not
// mutually exclusive and a session may hold both. Calling a transform for
// a direction that was not requested fails with ErrCipherDisabled.
//
// Init fails with ErrAlreadyInitialized on a session that is already
// bound (Close() first), ErrInvalidParameter on an empty name, and
// ErrAlgorithmNotSupported when the name is unknown or its backend is not
// present in this build. On failure no partial state is retained; the
// session stays uninitialized.
func (c *Cipher) Init(name string, mode CipherMode) error {
	if c.info != nil {
		return c.fail(ErrAlreadyInitialized)
	}
	if name == "" {
		return c.fail(ErrInvalidParameter)
	}

	ci := resolveCipherInterface(name)
	if ci == nil {
		Warning("cipher: unknown algorithm '%s'", name)
		return c.fail(ErrAlgorithmNotSupported)
	}

	adapter, err := newAdapterForMethod(ci)
	if err != nil {
		return c.fail(err)
	}

	c.mode = mode
	if err := adapter.init(c); err != nil {
		c.mode = 0
		return c.fail(err)
	}

	c.info = ci
	c.adapter = adapter
	c.iv = nil
	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncrementInit(ci.Name)
	}
	Debug("cipher: session bound to %s (method %s, mode 0x%02x)", ci.Name, ci.Method, mode)
	return nil
}

// SetKey loads key material into the session. bits is the length of key
// in bits as the caller accounts it; the key slice must cover at least
// that many bits. Generic provider algorithms require bits to be at least
// the algorithm's key size and use exactly that prefix, keying every
// allocated direction. The built-in fallback and the stream family copy
// into a fixed buffer and silently drop bits beyond its capacity.
func (c *Cipher) SetKey(key []byte, bits uint32) error {
	if c.info == nil {
		return c.fail(ErrNotInitialized)
	}

	if err := c.adapter.setKey(c, key, bits); err != nil {
		return c.fail(err)
	}
	c.lastErr = nil
	return nil
}

// SetKeyBytes loads key material, deriving the bit length from the slice
// length.
func (c *Cipher) SetKeyBytes(key []byte) error {
	return c.SetKey(key, uint32(len(key))*8)
}

// SetIV replaces the session IV wholesale. Fixed-IV algorithms require
// exactly IVSize() bytes and fail with ErrInvalidParameter otherwise;
// variable-IV algorithms accept any length; the stream family always
// requires the exact composite size. For the built-in fallback method the
// call is a no-op that always succeeds.
func (c *Cipher) SetIV(iv []byte) error {
	if c.info == nil {
		return c.fail(ErrNotInitialized)
	}
	if c.info.Method <= CIPHER_METHOD_INNER {
		c.lastErr = nil
		return nil
	}

	if err := c.adapter.setIV(c, iv); err != nil {
		return c.fail(err)
	}

	c.iv = make([]byte, len(iv))
	copy(c.iv, iv)
	c.lastErr = nil
	return nil
}

// ClearIV empties the IV buffer unconditionally for any method.
func (c *Cipher) ClearIV() error {
	if c.info == nil {
		return c.fail(ErrNotInitialized)
	}
	c.iv = nil
	c.lastErr = nil
	return nil
}

// IVSize returns the IV length in bytes the bound algorithm expects, or 0
// for an uninitialized session. Plain stream family sizes include the
// 8 byte counter prefix. Pure query; never raises an error.
func (c *Cipher) IVSize() int {
	if c.info == nil {
		return 0
	}
	return c.adapter.ivSize(c)
}

// KeyBits returns the key size in bits of the bound algorithm, or 0 for
// an uninitialized session. Pure query; never raises an error.
func (c *Cipher) KeyBits() uint32 {
	if c.info == nil {
		return 0
	}
	return c.adapter.keyBits(c)
}

// BlockSize returns the block size in bytes the bound algorithm reports,
// or 0 for an uninitialized session. Keystream style modes report 1.
// Pure query; never raises an error.
func (c *Cipher) BlockSize() int {
	if c.info == nil {
		return 0
	}
	return c.adapter.blockSize(c)
}

// IsAEAD returns true if the bound algorithm must be driven through the
// AEAD api. False for an uninitialized session.
func (c *Cipher) IsAEAD() bool {
	if c.info == nil {
		return false
	}
	return c.info.IsAEAD()
}

// checkTransformArgs enforces the shared transform preconditions: input
// must be non-empty and the output buffer must have worst-case headroom
// of one block beyond the input length.
func (c *Cipher) checkTransformArgs(input, output []byte) error {
	if len(input) == 0 {
		return ErrInvalidParameter
	}
	if len(output) < len(input)+c.adapter.blockSize(c) {
		return ErrInvalidParameter
	}
	return nil
}

// ensureIV lazily grows the IV buffer to the algorithm's fixed size
// before a transform, zero filling the missing suffix and keeping any
// bytes already set. Variable-IV algorithms and the built-in fallback are
// left alone. This reproduces the documented all-zero default IV; it is a
// compatibility behavior, not a recommendation.
func (c *Cipher) ensureIV() {
	if !c.info.Method.IsProviderBacked() || c.info.hasVariableIV() {
		return
	}
	need := c.adapter.ivSize(c)
	if len(c.iv) >= need {
		return
	}

	iv := make([]byte, need)
	copy(iv, c.iv)
	c.iv = iv
}

// Encrypt transforms input into output and returns the number of bytes
// produced. The session must be ready, hold the encrypt direction, and be
// bound to a non-AEAD algorithm. output needs capacity for the input plus
// one block. IV driven algorithms restart from the session IV on every
// call; the fallback method pads to its word size, so the returned length
// can exceed the input length.
func (c *Cipher) Encrypt(input, output []byte) (int, error) {
	start := time.Now()

	if c.info == nil {
		return 0, c.fail(ErrNotInitialized)
	}
	if c.info.IsAEAD() {
		return 0, c.fail(ErrMustCallAEADAPI)
	}
	if err := c.checkTransformArgs(input, output); err != nil {
		return 0, c.fail(err)
	}

	c.ensureIV()
	n, err := c.adapter.encrypt(c, input, output)
	if err != nil {
		return 0, c.fail(err)
	}

	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncrementEncryptOps(c.info.Name)
		c.metrics.AddBytesEncrypted(uint64(n))
		c.metrics.RecordOperationLatency(c.info.Name, time.Since(start))
	}
	return n, nil
}

// Decrypt transforms input into output and returns the number of bytes
// produced. Preconditions mirror Encrypt. The fallback method does not
// strip its zero padding; callers track the true plaintext length
// externally.
func (c *Cipher) Decrypt(input, output []byte) (int, error) {
	start := time.Now()

	if c.info == nil {
		return 0, c.fail(ErrNotInitialized)
	}
	if c.info.IsAEAD() {
		return 0, c.fail(ErrMustCallAEADAPI)
	}
	if err := c.checkTransformArgs(input, output); err != nil {
		return 0, c.fail(err)
	}

	c.ensureIV()
	n, err := c.adapter.decrypt(c, input, output)
	if err != nil {
		return 0, c.fail(err)
	}

	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncrementDecryptOps(c.info.Name)
		c.metrics.AddBytesDecrypted(uint64(n))
		c.metrics.RecordOperationLatency(c.info.Name, time.Since(start))
	}
	return n, nil
}

// EncryptAEAD encrypts input into output, absorbing ad into the
// authentication state, and writes the detached authentication tag into
// tag. The session must be bound to an AEAD algorithm
// (ErrMustNotCallAEADAPI otherwise). The stream family always writes a
// 16 byte tag and fails with ErrInsufficientTagCapacity when tag is
// shorter; the generic provider truncates the tag to len(tag). Passing an
// empty tag skips tag extraction entirely.
func (c *Cipher) EncryptAEAD(input, output, ad, tag []byte) (int, error) {
	start := time.Now()

	if c.info == nil {
		return 0, c.fail(ErrNotInitialized)
	}
	if !c.info.IsAEAD() {
		return 0, c.fail(ErrMustNotCallAEADAPI)
	}
	if err := c.checkTransformArgs(input, output); err != nil {
		return 0, c.fail(err)
	}

	c.ensureIV()
	n, err := c.adapter.encryptAEAD(c, input, output, ad, tag)
	if err != nil {
		return 0, c.fail(err)
	}

	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncrementEncryptOps(c.info.Name)
		c.metrics.AddBytesEncrypted(uint64(n))
		c.metrics.RecordOperationLatency(c.info.Name, time.Since(start))
	}
	return n, nil
}

// DecryptAEAD decrypts input into output, verifying the supplied tag over
// the ciphertext and ad. Unlike EncryptAEAD the tag is an input here. A
// verification failure surfaces as ErrCipherOperation; use
// IsAuthenticationFailure() to detect it and discard the output when it
// does. The session's provider state stays intact after a failure, so the
// caller may retry with corrected parameters.
func (c *Cipher) DecryptAEAD(input, output, ad, tag []byte) (int, error) {
	start := time.Now()

	if c.info == nil {
		return 0, c.fail(ErrNotInitialized)
	}
	if !c.info.IsAEAD() {
		return 0, c.fail(ErrMustNotCallAEADAPI)
	}
	if err := c.checkTransformArgs(input, output); err != nil {
		return 0, c.fail(err)
	}

	c.ensureIV()
	n, err := c.adapter.decryptAEAD(c, input, output, ad, tag)
	if err != nil {
		return 0, c.fail(err)
	}

	c.lastErr = nil
	if c.metrics != nil {
		c.metrics.IncrementDecryptOps(c.info.Name)
		c.metrics.AddBytesDecrypted(uint64(n))
		c.metrics.RecordOperationLatency(c.info.Name, time.Since(start))
	}
	return n, nil
}

// Close releases provider state and returns the session to its pre-init
// state. Closing an uninitialized session returns ErrNotInitialized as a
// clean status rather than a fault, so deferred cleanup can call Close
// unconditionally. Idempotent: a second Close reports ErrNotInitialized.
func (c *Cipher) Close() error {
	if c.info == nil {
		return c.fail(ErrNotInitialized)
	}

	c.adapter.close(c)
	c.adapter = nil
	c.info = nil
	c.mode = 0
	c.iv = nil
	c.lastErr = nil
	Debug("cipher: session closed")
	return nil
}
