package go_cipher

import "sync"

// Process-wide provider setup.
//
// Generic providers historically require a one-time process-wide algorithm
// table registration before any by-name lookup, with a matching teardown
// at process end. Both entry points are guarded: repeated or concurrent
// calls are safe, initialization and teardown each happen at most once per
// cycle. A second init without an intervening cleanup is a no-op rather
// than a double registration.

var (
	globalAlgorithmMu     sync.Mutex
	globalAlgorithmInited bool
)

// InitGlobalAlgorithms performs the one-time process-wide algorithm table
// setup for the generic provider and warms the availability cache. Call
// once at process start; extra calls return immediately.
func InitGlobalAlgorithms() {
	globalAlgorithmMu.Lock()
	defer globalAlgorithmMu.Unlock()

	if globalAlgorithmInited {
		Debug("cipher: global algorithm table already initialized")
		return
	}
	globalAlgorithmInited = true

	names := GetAllCipherNames()
	Info("cipher: library %s initialized, %d algorithms available", CIPHER_LIB_VERSION, len(names))
}

// CleanupGlobalAlgorithms releases the process-wide provider state set up
// by InitGlobalAlgorithms. Call once at process end; calling without a
// matching init is a safe no-op.
func CleanupGlobalAlgorithms() {
	globalAlgorithmMu.Lock()
	defer globalAlgorithmMu.Unlock()

	if !globalAlgorithmInited {
		return
	}
	globalAlgorithmInited = false
	Debug("cipher: global algorithm table released")
}
