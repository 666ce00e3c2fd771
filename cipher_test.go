package go_cipher

import (
	"bytes"
	"errors"
	"testing"
)

// testBytes returns n deterministic bytes seeded from b.
func testBytes(n int, seed byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = seed + byte(i*13)
	}
	return out
}

// newReadySession builds an initialized, keyed session for tests. iv may be
// nil for algorithms that take none or to exercise the default zero IV.
func newReadySession(t *testing.T, name string, mode CipherMode, key, iv []byte) *Cipher {
	t.Helper()

	c := NewCipher()
	if err := c.Init(name, mode); err != nil {
		t.Fatalf("Init(%q) failed: %v", name, err)
	}
	if err := c.SetKeyBytes(key); err != nil {
		t.Fatalf("SetKeyBytes for %q failed: %v", name, err)
	}
	if iv != nil {
		if err := c.SetIV(iv); err != nil {
			t.Fatalf("SetIV for %q failed: %v", name, err)
		}
	}
	return c
}

// TestSessionLifecycle walks a session through init, use, close and rebind.
func TestSessionLifecycle(t *testing.T) {
	c := NewCipher()

	// Uninitialized getters are inert.
	if c.Name() != "" {
		t.Errorf("Name() = %q before init, want empty", c.Name())
	}
	if c.Mode() != 0 || c.IVSize() != 0 || c.KeyBits() != 0 || c.BlockSize() != 0 || c.IsAEAD() {
		t.Error("uninitialized session getters should report zero values")
	}

	if err := c.Init("aes-256-cbc", CIPHER_MODE_ENCRYPT); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if c.Name() != "aes-256-cbc" {
		t.Errorf("Name() = %q, want aes-256-cbc", c.Name())
	}
	if c.Mode() != CIPHER_MODE_ENCRYPT {
		t.Errorf("Mode() = %v, want encrypt", c.Mode())
	}
	if c.KeyBits() != 256 || c.IVSize() != 16 || c.BlockSize() != 16 {
		t.Errorf("size getters = %d/%d/%d, want 256/16/16", c.KeyBits(), c.IVSize(), c.BlockSize())
	}

	// A bound session refuses a second Init and keeps its binding.
	if err := c.Init("aes-128-cbc", CIPHER_MODE_ENCRYPT); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init = %v, want ErrAlreadyInitialized", err)
	}
	if c.Name() != "aes-256-cbc" {
		t.Errorf("failed re-init disturbed the binding: %q", c.Name())
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if c.Name() != "" || c.Mode() != 0 || c.IVSize() != 0 {
		t.Error("Close did not reset the session")
	}
	if err := c.Close(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("second Close = %v, want ErrNotInitialized", err)
	}

	// The session is reusable after Close.
	if err := c.Init("xxtea", CIPHER_MODE_ENCRYPT|CIPHER_MODE_DECRYPT); err != nil {
		t.Fatalf("re-Init after Close failed: %v", err)
	}
	if c.KeyBits() != 128 || c.BlockSize() != XXTEA_BLOCK_SIZE {
		t.Errorf("xxtea getters = %d/%d, want 128/%d", c.KeyBits(), c.BlockSize(), XXTEA_BLOCK_SIZE)
	}
	c.Close()
}

// TestInitErrors verifies each Init failure mode leaves the session
// uninitialized.
func TestInitErrors(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		want      error
	}{
		{"empty name", "", ErrInvalidParameter},
		{"unknown name", "rot13", ErrAlgorithmNotSupported},
		{"unbacked stream variant", "chacha20-poly1305", ErrAlgorithmNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCipher()
			if err := c.Init(tt.algorithm, CIPHER_MODE_ENCRYPT); !errors.Is(err, tt.want) {
				t.Errorf("Init(%q) = %v, want %v", tt.algorithm, err, tt.want)
			}
			if c.Name() != "" {
				t.Errorf("failed Init left the session bound to %q", c.Name())
			}

			// A failed Init must not poison the session for a retry.
			if err := c.Init("xxtea", CIPHER_MODE_ENCRYPT); err != nil {
				t.Errorf("Init after failure = %v, want success", err)
			}
			c.Close()
		})
	}
}

// TestUninitializedOperations verifies every operation demands Init first
// and that the state guard leaves no retained diagnostic behind.
func TestUninitializedOperations(t *testing.T) {
	c := NewCipher()
	buf := make([]byte, 64)
	tag := make([]byte, STREAM_TAG_SIZE)

	if err := c.SetKeyBytes(buf[:16]); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SetKeyBytes = %v, want ErrNotInitialized", err)
	}
	if err := c.SetIV(buf[:16]); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("SetIV = %v, want ErrNotInitialized", err)
	}
	if err := c.ClearIV(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ClearIV = %v, want ErrNotInitialized", err)
	}
	if _, err := c.Encrypt(buf[:16], buf); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Encrypt = %v, want ErrNotInitialized", err)
	}
	if _, err := c.Decrypt(buf[:16], buf); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Decrypt = %v, want ErrNotInitialized", err)
	}
	if _, err := c.EncryptAEAD(buf[:16], buf, nil, tag); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("EncryptAEAD = %v, want ErrNotInitialized", err)
	}
	if _, err := c.DecryptAEAD(buf[:16], buf, nil, tag); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("DecryptAEAD = %v, want ErrNotInitialized", err)
	}

	if c.LastError() != nil {
		t.Errorf("state guards retained a diagnostic: %v", c.LastError())
	}
}

// TestRetainedError verifies the retained-diagnostic policy: successes and
// clean statuses clear it, parameter and provider failures set it, and
// wrong-api-shape guards leave it untouched.
func TestRetainedError(t *testing.T) {
	key := testBytes(32, 0x20)
	c := newReadySession(t, "aes-256-cbc", CIPHER_MODE_ENCRYPT, key, testBytes(16, 0x40))
	defer c.Close()

	in := testBytes(16, 0x01)
	out := make([]byte, 64)
	tag := make([]byte, STREAM_TAG_SIZE)

	if _, err := c.Encrypt(in, out); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if c.LastError() != nil {
		t.Errorf("success retained a diagnostic: %v", c.LastError())
	}

	if _, err := c.Encrypt(nil, out); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("empty input = %v, want ErrInvalidParameter", err)
	}
	if !errors.Is(c.LastError(), ErrInvalidParameter) {
		t.Errorf("parameter failure not retained: %v", c.LastError())
	}

	// Wrong api shape must not disturb the retained value.
	if _, err := c.EncryptAEAD(in, out, nil, tag); !errors.Is(err, ErrMustNotCallAEADAPI) {
		t.Fatalf("EncryptAEAD on plain algorithm = %v, want ErrMustNotCallAEADAPI", err)
	}
	if !errors.Is(c.LastError(), ErrInvalidParameter) {
		t.Errorf("api shape guard disturbed the retained value: %v", c.LastError())
	}

	if _, err := c.Encrypt(in, out); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if c.LastError() != nil {
		t.Errorf("success did not clear the retained value: %v", c.LastError())
	}

	// Missing direction is a clean status, not a retained fault.
	if _, err := c.Decrypt(in, out); !errors.Is(err, ErrCipherDisabled) {
		t.Fatalf("Decrypt on encrypt-only session = %v, want ErrCipherDisabled", err)
	}
	if c.LastError() != nil {
		t.Errorf("disabled direction retained a diagnostic: %v", c.LastError())
	}
}

// TestTransformArgumentChecks verifies the shared input and output buffer
// preconditions.
func TestTransformArgumentChecks(t *testing.T) {
	c := newReadySession(t, "aes-256-ctr", CIPHER_MODE_ENCRYPT, testBytes(32, 0x11), nil)
	defer c.Close()

	in := testBytes(16, 0x02)

	if _, err := c.Encrypt(nil, make([]byte, 64)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("nil input = %v, want ErrInvalidParameter", err)
	}
	if _, err := c.Encrypt([]byte{}, make([]byte, 64)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty input = %v, want ErrInvalidParameter", err)
	}

	// Output must cover the input plus one block of headroom.
	if _, err := c.Encrypt(in, make([]byte, len(in))); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("tight output buffer = %v, want ErrInvalidParameter", err)
	}
	if n, err := c.Encrypt(in, make([]byte, len(in)+c.BlockSize())); err != nil || n != len(in) {
		t.Errorf("minimal output buffer = (%d, %v), want (%d, nil)", n, err, len(in))
	}
}

// TestSetIVValidation verifies per-family IV length rules.
func TestSetIVValidation(t *testing.T) {
	// Fixed-IV generic algorithms demand the exact size.
	c := newReadySession(t, "aes-256-cbc", CIPHER_MODE_ENCRYPT, testBytes(32, 0x07), nil)
	defer c.Close()
	if err := c.SetIV(make([]byte, 8)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("short IV = %v, want ErrInvalidParameter", err)
	}
	if !errors.Is(c.LastError(), ErrInvalidParameter) {
		t.Errorf("IV failure not retained: %v", c.LastError())
	}
	if err := c.SetIV(make([]byte, 16)); err != nil {
		t.Errorf("exact IV = %v, want success", err)
	}
	if c.LastError() != nil {
		t.Errorf("successful SetIV did not clear the retained value: %v", c.LastError())
	}

	// The stream family wants the composite counter plus nonce size.
	s := newReadySession(t, "chacha20-ietf", CIPHER_MODE_ENCRYPT, testBytes(32, 0x09), nil)
	defer s.Close()
	if s.IVSize() != STREAM_COUNTER_SIZE+12 {
		t.Fatalf("chacha20-ietf IVSize = %d, want %d", s.IVSize(), STREAM_COUNTER_SIZE+12)
	}
	if err := s.SetIV(make([]byte, 12)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("bare nonce = %v, want ErrInvalidParameter", err)
	}
	if err := s.SetIV(make([]byte, 20)); err != nil {
		t.Errorf("composite IV = %v, want success", err)
	}

	// Variable-IV algorithms accept any length at SetIV time.
	g := newReadySession(t, "aes-256-gcm", CIPHER_MODE_ENCRYPT, testBytes(32, 0x0b), nil)
	defer g.Close()
	for _, n := range []int{7, 12, 13, 16} {
		if err := g.SetIV(make([]byte, n)); err != nil {
			t.Errorf("variable IV of %d bytes = %v, want success", n, err)
		}
	}

	// The built-in fallback ignores IVs entirely.
	x := newReadySession(t, "xxtea", CIPHER_MODE_ENCRYPT, testBytes(16, 0x0d), nil)
	defer x.Close()
	if x.IVSize() != 0 {
		t.Errorf("xxtea IVSize = %d, want 0", x.IVSize())
	}
	if err := x.SetIV(make([]byte, 33)); err != nil {
		t.Errorf("fallback SetIV = %v, want success", err)
	}
}

// TestZeroIVDefault verifies a session that never set an IV transforms as
// if an all-zero IV of the algorithm's size had been set.
func TestZeroIVDefault(t *testing.T) {
	key := testBytes(32, 0x33)
	in := testBytes(48, 0x03)

	implicit := newReadySession(t, "aes-256-ctr", CIPHER_MODE_ENCRYPT, key, nil)
	defer implicit.Close()
	explicit := newReadySession(t, "aes-256-ctr", CIPHER_MODE_ENCRYPT, key, make([]byte, 16))
	defer explicit.Close()

	a := make([]byte, len(in)+implicit.BlockSize())
	b := make([]byte, len(in)+explicit.BlockSize())

	n, err := implicit.Encrypt(in, a)
	if err != nil {
		t.Fatalf("implicit IV encrypt failed: %v", err)
	}
	m, err := explicit.Encrypt(in, b)
	if err != nil {
		t.Fatalf("explicit IV encrypt failed: %v", err)
	}

	if n != m || !bytes.Equal(a[:n], b[:m]) {
		t.Error("default IV differs from an explicit all-zero IV")
	}
}

// TestClearIVRestoresDefault verifies ClearIV returns the session to the
// zero IV without touching the rest of the state.
func TestClearIVRestoresDefault(t *testing.T) {
	key := testBytes(32, 0x44)
	in := testBytes(16, 0x04)

	c := newReadySession(t, "aes-256-cbc", CIPHER_MODE_ENCRYPT, key, nil)
	defer c.Close()

	zeroOut := make([]byte, 64)
	n, err := c.Encrypt(in, zeroOut)
	if err != nil {
		t.Fatalf("encrypt with default IV failed: %v", err)
	}

	if err := c.SetIV(testBytes(16, 0x55)); err != nil {
		t.Fatalf("SetIV failed: %v", err)
	}
	ivOut := make([]byte, 64)
	m, err := c.Encrypt(in, ivOut)
	if err != nil {
		t.Fatalf("encrypt with explicit IV failed: %v", err)
	}
	if bytes.Equal(zeroOut[:n], ivOut[:m]) {
		t.Fatal("distinct IVs produced identical ciphertext")
	}

	if err := c.ClearIV(); err != nil {
		t.Fatalf("ClearIV failed: %v", err)
	}
	clearedOut := make([]byte, 64)
	k, err := c.Encrypt(in, clearedOut)
	if err != nil {
		t.Fatalf("encrypt after ClearIV failed: %v", err)
	}
	if !bytes.Equal(zeroOut[:n], clearedOut[:k]) {
		t.Error("ClearIV did not restore the default zero IV")
	}
}

// TestModeBitmaskBothDirections verifies one session can hold both
// directions at once.
func TestModeBitmaskBothDirections(t *testing.T) {
	key := testBytes(16, 0x66)
	c := newReadySession(t, "aes-128-cbc", CIPHER_MODE_ENCRYPT|CIPHER_MODE_DECRYPT, key, testBytes(16, 0x77))
	defer c.Close()

	in := testBytes(32, 0x05)
	ct := make([]byte, len(in)+c.BlockSize())
	n, err := c.Encrypt(in, ct)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	back := make([]byte, n+c.BlockSize())
	m, err := c.Decrypt(ct[:n], back)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(back[:m], in) {
		t.Error("dual-direction session failed to round trip")
	}
}

// TestSetKeyValidation verifies the generic provider's key length demands
// and the prefix rule for oversized keys.
func TestSetKeyValidation(t *testing.T) {
	c := NewCipher()
	if err := c.Init("aes-256-cbc", CIPHER_MODE_ENCRYPT); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer c.Close()

	if err := c.SetKeyBytes(testBytes(16, 0x01)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("short key = %v, want ErrInvalidParameter", err)
	}

	// The bits argument governs, not just the slice length.
	if err := c.SetKey(testBytes(32, 0x01), 128); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("undersized bits = %v, want ErrInvalidParameter", err)
	}

	// Oversized key material: only the required prefix is used.
	long := testBytes(40, 0x12)
	if err := c.SetKeyBytes(long); err != nil {
		t.Fatalf("oversized key rejected: %v", err)
	}
	in := testBytes(16, 0x06)
	a := make([]byte, 64)
	n, err := c.Encrypt(in, a)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	exact := newReadySession(t, "aes-256-cbc", CIPHER_MODE_ENCRYPT, long[:32], nil)
	defer exact.Close()
	b := make([]byte, 64)
	m, err := exact.Encrypt(in, b)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if !bytes.Equal(a[:n], b[:m]) {
		t.Error("oversized key does not behave as its 32 byte prefix")
	}
}
