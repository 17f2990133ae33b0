package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. Useful for tests and for CLI runs that
// don't want cross-run reuse.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }
func (c *NullCache) Close() error                                 { return nil }

var _ Cache = (*NullCache)(nil)
