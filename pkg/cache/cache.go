// Package cache provides pluggable byte caches and cache-key derivation
// for the solve pipeline.
//
// Three backends cover the deployment modes:
//   - FileCache: per-user cache directory for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are derived by a Keyer from content hashes, so identical inputs hit
// the same entry regardless of where they came from. ScopedKeyer prefixes
// keys for namespace isolation when several deployments share one Redis.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Solve results are pure functions of
// their input and could live forever; the TTLs just bound cache growth.
const (
	TTLSolve    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
