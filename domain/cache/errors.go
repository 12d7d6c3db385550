package cache

import "errors"

var (
	// ErrInvalidKey is returned for keys the backend cannot store, such
	// as the empty string.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrCacheFull is returned by bounded caches when an insert would
	// exceed capacity. Misses are not errors; Get reports them through
	// its found result.
	ErrCacheFull = errors.New("cache is full")

	// ErrConnectionFailed wraps failures to reach a remote cache backend.
	ErrConnectionFailed = errors.New("cache connection failed")

	// ErrOperationTimeout wraps backend operations that exceed their
	// context deadline.
	ErrOperationTimeout = errors.New("cache operation timeout")
)
