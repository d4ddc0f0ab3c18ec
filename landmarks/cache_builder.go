package landmarks

import "time"

// CacheBuilderOption is a functional option for configuring a Cache.
type CacheBuilderOption func(*cache)

// WithInMemory runs the cache in memory-only mode (no disk persistence).
// Useful for tests that want a real store engine without touching disk.
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithInMemory() CacheBuilderOption {
	return func(c *cache) {
		c.inMemory = true
	}
}

// WithTTL expires cache entries after the given duration. Zero (the default)
// keeps entries until overwritten.
//
// Parameters:
//   - ttl: the entry lifetime
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithTTL(ttl time.Duration) CacheBuilderOption {
	return func(c *cache) {
		c.ttl = ttl
	}
}
