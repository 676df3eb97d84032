package store

import "errors"

// Common store errors used across all cache implementations.
var (
	// ErrInvalidKey is returned when a cache key is empty.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrCorruptEntry is returned when a stored value cannot be decoded.
	// Callers should treat it as a miss.
	ErrCorruptEntry = errors.New("corrupt cache entry")

	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("cache is closed")
)
