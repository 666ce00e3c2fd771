package go_cipher

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines the interface for collecting cipher session metrics.
// This interface allows applications to plug in custom metrics implementations
// (e.g., Prometheus, StatsD, custom logging) for production monitoring.
//
// All methods are safe for concurrent use and should be non-blocking.
type MetricsCollector interface {
	// Operation Counters

	// IncrementInit increments the count of successful session
	// initializations by algorithm.
	IncrementInit(algorithm string)

	// IncrementEncryptOps increments the count of encrypt operations by algorithm.
	// algorithm is the unified catalog name (e.g., "aes-256-gcm").
	IncrementEncryptOps(algorithm string)

	// IncrementDecryptOps increments the count of decrypt operations by algorithm.
	IncrementDecryptOps(algorithm string)

	// Session Tracking

	// SetActiveSessions updates the gauge of currently active cipher sessions.
	SetActiveSessions(count int)

	// Error Tracking

	// IncrementError increments the error counter by error type.
	// errorType should describe the error category (e.g., "invalid_parameter",
	// "provider_operation").
	IncrementError(errorType string)

	// Latency Tracking

	// RecordOperationLatency records the latency of one transform operation.
	// algorithm is the unified catalog name, duration is the operation time.
	RecordOperationLatency(algorithm string, duration time.Duration)

	// Throughput Tracking

	// AddBytesEncrypted adds to the total plaintext bytes encrypted counter.
	AddBytesEncrypted(bytes uint64)

	// AddBytesDecrypted adds to the total ciphertext bytes decrypted counter.
	AddBytesDecrypted(bytes uint64)
}

// metricsErrorLabel maps a session error onto the stable category string
// fed to IncrementError.
func metricsErrorLabel(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyInitialized):
		return "already_initialized"
	case errors.Is(err, ErrNotInitialized):
		return "not_initialized"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrAlgorithmNotSupported):
		return "algorithm_not_supported"
	case errors.Is(err, ErrAllocationFailure):
		return "allocation_failure"
	case errors.Is(err, ErrCipherOperationSetIV):
		return "provider_iv_set"
	case errors.Is(err, ErrCipherOperation):
		return "provider_operation"
	case errors.Is(err, ErrMustCallAEADAPI):
		return "must_call_aead_api"
	case errors.Is(err, ErrMustNotCallAEADAPI):
		return "must_not_call_aead_api"
	case errors.Is(err, ErrCipherDisabled):
		return "cipher_disabled"
	case errors.Is(err, ErrInsufficientTagCapacity):
		return "insufficient_tag_capacity"
	default:
		return "other"
	}
}

// InMemoryMetrics provides a simple in-memory implementation of MetricsCollector.
// Suitable for development, testing, and applications that want basic metrics
// without external dependencies.
//
// All operations are thread-safe using atomic operations and minimal locking.
type InMemoryMetrics struct {
	// Operation counters by algorithm (maps protected by mutex)
	opsMu      sync.RWMutex
	initOps    map[string]uint64
	encryptOps map[string]uint64
	decryptOps map[string]uint64

	// Session tracking
	activeSessions int32

	// Error tracking (map protected by mutex)
	errorsMu     sync.RWMutex
	errorsByType map[string]uint64

	// Latency tracking (protected by mutex for histogram updates)
	latencyMu          sync.RWMutex
	latencyByAlgorithm map[string]*latencyStats

	// Throughput tracking
	bytesEncrypted uint64
	bytesDecrypted uint64
}

// latencyStats tracks latency statistics for one algorithm
type latencyStats struct {
	count      uint64
	totalNanos uint64
	minNanos   uint64
	maxNanos   uint64
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		initOps:            make(map[string]uint64),
		encryptOps:         make(map[string]uint64),
		decryptOps:         make(map[string]uint64),
		errorsByType:       make(map[string]uint64),
		latencyByAlgorithm: make(map[string]*latencyStats),
	}
}

// IncrementInit increments the init counter for the given algorithm.
func (m *InMemoryMetrics) IncrementInit(algorithm string) {
	m.opsMu.Lock()
	m.initOps[algorithm]++
	m.opsMu.Unlock()
}

// IncrementEncryptOps increments the encrypt counter for the given algorithm.
func (m *InMemoryMetrics) IncrementEncryptOps(algorithm string) {
	m.opsMu.Lock()
	m.encryptOps[algorithm]++
	m.opsMu.Unlock()
}

// IncrementDecryptOps increments the decrypt counter for the given algorithm.
func (m *InMemoryMetrics) IncrementDecryptOps(algorithm string) {
	m.opsMu.Lock()
	m.decryptOps[algorithm]++
	m.opsMu.Unlock()
}

// SetActiveSessions updates the active sessions gauge.
func (m *InMemoryMetrics) SetActiveSessions(count int) {
	atomic.StoreInt32(&m.activeSessions, int32(count))
}

// IncrementError increments the error counter for the given error type.
func (m *InMemoryMetrics) IncrementError(errorType string) {
	m.errorsMu.Lock()
	m.errorsByType[errorType]++
	m.errorsMu.Unlock()
}

// RecordOperationLatency records the latency of one transform for an algorithm.
func (m *InMemoryMetrics) RecordOperationLatency(algorithm string, duration time.Duration) {
	nanos := uint64(duration.Nanoseconds())

	m.latencyMu.Lock()
	defer m.latencyMu.Unlock()

	stats := m.latencyByAlgorithm[algorithm]
	if stats == nil {
		stats = &latencyStats{
			minNanos: nanos,
			maxNanos: nanos,
		}
		m.latencyByAlgorithm[algorithm] = stats
	}

	stats.count++
	stats.totalNanos += nanos

	if nanos < stats.minNanos {
		stats.minNanos = nanos
	}
	if nanos > stats.maxNanos {
		stats.maxNanos = nanos
	}
}

// AddBytesEncrypted adds to the total plaintext bytes encrypted.
func (m *InMemoryMetrics) AddBytesEncrypted(bytes uint64) {
	atomic.AddUint64(&m.bytesEncrypted, bytes)
}

// AddBytesDecrypted adds to the total ciphertext bytes decrypted.
func (m *InMemoryMetrics) AddBytesDecrypted(bytes uint64) {
	atomic.AddUint64(&m.bytesDecrypted, bytes)
}

// Getter methods for programmatic access to metrics

// InitOps returns the count of successful initializations for an algorithm.
func (m *InMemoryMetrics) InitOps(algorithm string) uint64 {
	m.opsMu.RLock()
	defer m.opsMu.RUnlock()
	return m.initOps[algorithm]
}

// EncryptOps returns the count of encrypt operations for an algorithm.
func (m *InMemoryMetrics) EncryptOps(algorithm string) uint64 {
	m.opsMu.RLock()
	defer m.opsMu.RUnlock()
	return m.encryptOps[algorithm]
}

// DecryptOps returns the count of decrypt operations for an algorithm.
func (m *InMemoryMetrics) DecryptOps(algorithm string) uint64 {
	m.opsMu.RLock()
	defer m.opsMu.RUnlock()
	return m.decryptOps[algorithm]
}

// ActiveSessions returns the current count of active cipher sessions.
func (m *InMemoryMetrics) ActiveSessions() int {
	return int(atomic.LoadInt32(&m.activeSessions))
}

// Errors returns the total count of errors by type.
func (m *InMemoryMetrics) Errors(errorType string) uint64 {
	m.errorsMu.RLock()
	defer m.errorsMu.RUnlock()
	return m.errorsByType[errorType]
}

// AllErrors returns a copy of all error counts by type.
func (m *InMemoryMetrics) AllErrors() map[string]uint64 {
	m.errorsMu.RLock()
	defer m.errorsMu.RUnlock()

	result := make(map[string]uint64, len(m.errorsByType))
	for k, v := range m.errorsByType {
		result[k] = v
	}
	return result
}

// AvgLatency returns the average transform latency for an algorithm.
// Returns 0 if no measurements have been recorded.
func (m *InMemoryMetrics) AvgLatency(algorithm string) time.Duration {
	m.latencyMu.RLock()
	defer m.latencyMu.RUnlock()

	stats := m.latencyByAlgorithm[algorithm]
	if stats == nil || stats.count == 0 {
		return 0
	}

	return time.Duration(stats.totalNanos / stats.count)
}

// MinLatency returns the minimum transform latency for an algorithm.
// Returns 0 if no measurements have been recorded.
func (m *InMemoryMetrics) MinLatency(algorithm string) time.Duration {
	m.latencyMu.RLock()
	defer m.latencyMu.RUnlock()

	stats := m.latencyByAlgorithm[algorithm]
	if stats == nil {
		return 0
	}

	return time.Duration(stats.minNanos)
}

// MaxLatency returns the maximum transform latency for an algorithm.
// Returns 0 if no measurements have been recorded.
func (m *InMemoryMetrics) MaxLatency(algorithm string) time.Duration {
	m.latencyMu.RLock()
	defer m.latencyMu.RUnlock()

	stats := m.latencyByAlgorithm[algorithm]
	if stats == nil {
		return 0
	}

	return time.Duration(stats.maxNanos)
}

// BytesEncrypted returns the total plaintext bytes encrypted.
func (m *InMemoryMetrics) BytesEncrypted() uint64 {
	return atomic.LoadUint64(&m.bytesEncrypted)
}

// BytesDecrypted returns the total ciphertext bytes decrypted.
func (m *InMemoryMetrics) BytesDecrypted() uint64 {
	return atomic.LoadUint64(&m.bytesDecrypted)
}

// Reset clears all metrics. Useful for testing.
func (m *InMemoryMetrics) Reset() {
	// Reset operation counters
	m.opsMu.Lock()
	m.initOps = make(map[string]uint64)
	m.encryptOps = make(map[string]uint64)
	m.decryptOps = make(map[string]uint64)
	m.opsMu.Unlock()

	// Reset sessions
	atomic.StoreInt32(&m.activeSessions, 0)

	// Reset errors
	m.errorsMu.Lock()
	m.errorsByType = make(map[string]uint64)
	m.errorsMu.Unlock()

	// Reset latency
	m.latencyMu.Lock()
	m.latencyByAlgorithm = make(map[string]*latencyStats)
	m.latencyMu.Unlock()

	// Reset throughput
	atomic.StoreUint64(&m.bytesEncrypted, 0)
	atomic.StoreUint64(&m.bytesDecrypted, 0)
}
