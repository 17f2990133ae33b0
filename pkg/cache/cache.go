// Package cache stores and retrieves already-generated command buffers so
// a caller can skip re-running the generator for a library/title/seed
// combination it has already resolved.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface every backend implements: an in-process
// null cache for tests, a file cache for CLI usage, and a Redis cache for
// multi-instance deployments.
type Cache interface {
	// Get retrieves data for key. The bool reports whether it was found;
	// a false with a nil error means a plain cache miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means "no expiration".
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key, if present.
	Delete(ctx context.Context, key string) error

	// Close releases any resources the backend holds.
	Close() error
}

// Keyer builds cache keys for a generation run so backends never see raw
// library contents or seeds directly.
type Keyer interface {
	// RunKey identifies one generation run: a possibility library
	// (identified by its content hash), a starting schema title, and the
	// seed driving the run's randomness.
	RunKey(libraryHash, startTitle string, seed uint64) string
}

// DefaultKeyer builds keys as "run:<sha256 of the parts>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RunKey implements Keyer.
func (DefaultKeyer) RunKey(libraryHash, startTitle string, seed uint64) string {
	return hashKey("run", libraryHash, startTitle, seed)
}
