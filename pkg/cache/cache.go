// Package cache provides the byte-oriented cache used for registry
// metadata responses.
//
// Three backends are available:
//   - [FileCache]: per-user cache directory, for normal CLI use
//   - [RedisCache]: shared cache for CI fleets that resolve the same
//     dependency sets repeatedly
//   - [NullCache]: no-op, for --no-cache and tests
//
// Keys are hashed with SHA-256 before storage, so arbitrary strings
// (URLs, coordinates) are safe keys. Entries carry a TTL; expired entries
// read as misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("not found")

// Cache stores opaque byte values under string keys with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and fresh; expired or missing entries return false.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any backend resources.
	Close() error
}

// Hash returns the full SHA-256 hex digest of data. Used to derive safe
// storage keys from arbitrary cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
