package go_cipher

import (
	"errors"
	"fmt"
)

// Standard Cipher Error Types
//
// These errors follow Go 1.13+ error wrapping conventions and can be
// checked using errors.Is() and errors.As(). All errors include context
// about the operation that failed and the underlying cause.
//
// Design rationale:
// - Use sentinel errors for common, expected error conditions
// - Use error types for errors that need additional context
// - All errors are safe for error wrapping with fmt.Errorf("%w", err)

// Sentinel errors for cipher session misuse and backend failures
var (
	// ErrAlreadyInitialized indicates Init() was called on a session that is
	// already bound to an algorithm. Call Close() first to rebind.
	ErrAlreadyInitialized = errors.New("cipher: session already initialized")

	// ErrNotInitialized indicates an operation was attempted before Init()
	// succeeded, or after Close(). Key, IV and transform calls all require
	// an initialized session.
	ErrNotInitialized = errors.New("cipher: session not initialized")

	// ErrInvalidParameter indicates a nil, empty or wrongly sized argument
	// was passed to a session method. Typical causes are an empty input,
	// an output buffer smaller than input length plus one block, an IV of
	// the wrong length, or a key shorter than the algorithm requires.
	ErrInvalidParameter = errors.New("cipher: invalid parameter")

	// ErrAlgorithmNotSupported indicates the requested algorithm name is not
	// in the catalog, or its backend was not compiled into this build.
	// Use GetAllCipherNames() to enumerate what is actually available.
	ErrAlgorithmNotSupported = errors.New("cipher: algorithm not supported")

	// ErrAllocationFailure indicates the provider could not allocate a
	// cipher context for the requested algorithm.
	ErrAllocationFailure = errors.New("cipher: context allocation failed")

	// ErrCipherOperation indicates the provider rejected a transform
	// request. For authenticated decryption this is how a tag verification
	// failure surfaces; use IsAuthenticationFailure() to distinguish it.
	ErrCipherOperation = errors.New("cipher: provider operation failed")

	// ErrCipherOperationSetIV indicates the provider rejected the IV while
	// rebinding it for a transform. The session stays initialized; the
	// caller may supply a different IV and retry.
	ErrCipherOperationSetIV = errors.New("cipher: provider rejected iv")

	// ErrMustCallAEADAPI indicates Encrypt() or Decrypt() was called on an
	// AEAD algorithm. AEAD algorithms carry a tag and optional associated
	// data and must go through EncryptAEAD()/DecryptAEAD().
	ErrMustCallAEADAPI = errors.New("cipher: aead algorithm requires the aead api")

	// ErrMustNotCallAEADAPI indicates EncryptAEAD() or DecryptAEAD() was
	// called on a plain algorithm that produces no authentication tag.
	ErrMustNotCallAEADAPI = errors.New("cipher: algorithm does not support the aead api")

	// ErrCipherDisabled indicates the algorithm is present in the catalog
	// but its provider context is missing at runtime, so the session cannot
	// transform in this direction.
	ErrCipherDisabled = errors.New("cipher: algorithm disabled in this build")

	// ErrInsufficientTagCapacity indicates the tag buffer handed to the
	// AEAD api is shorter than the 16 bytes the stream family produces
	// and verifies.
	ErrInsufficientTagCapacity = errors.New("cipher: tag buffer too small")
)

// OperationError represents a failure inside a provider while executing a
// session operation. It records which algorithm and operation failed, the
// sentinel classifying the failure, and the provider's own error when the
// provider reported one.
type OperationError struct {
	Algorithm string // catalog name, e.g. "aes-256-gcm"
	Operation string // what operation failed (e.g., "set iv", "finalize")
	Err       error  // sentinel classifying the failure
	Cause     error  // underlying provider error, may be nil
}

func (e *OperationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cipher: %s %s failed: %v", e.Algorithm, e.Operation, e.Cause)
	}
	return fmt.Sprintf("cipher: %s %s failed: %v", e.Algorithm, e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates an OperationError with the given parameters.
// Use this to wrap provider failures so callers can match the sentinel
// with errors.Is while keeping the provider's diagnostic.
//
// Example:
//
//	if err := block.seal(dst, nonce, in, ad); err != nil {
//	    return NewOperationError(c.Name(), "aead encrypt", ErrCipherOperation, err)
//	}
func NewOperationError(algorithm, operation string, sentinel, cause error) error {
	return &OperationError{
		Algorithm: algorithm,
		Operation: operation,
		Err:       sentinel,
		Cause:     cause,
	}
}

// IsStateError returns true if the error indicates the session was used in
// the wrong order or through the wrong api shape. These errors are caller
// bugs; retrying the same call cannot succeed.
func IsStateError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrNotInitialized) ||
		errors.Is(err, ErrAlreadyInitialized) ||
		errors.Is(err, ErrMustCallAEADAPI) ||
		errors.Is(err, ErrMustNotCallAEADAPI)
}

// IsAuthenticationFailure returns true if the error was caused by an AEAD
// tag verification failure during authenticated decryption. Callers should
// discard the output buffer when this is true.
func IsAuthenticationFailure(err error) bool {
	if err == nil {
		return false
	}

	var oe *OperationError
	if errors.As(err, &oe) {
		return errors.Is(oe.Err, ErrCipherOperation) && oe.Operation == "aead decrypt"
	}

	return false
}
