package cacheinfra

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds the configuration for the bounded LRU cache adapter.
type Config struct {
	// Capacity defines the maximum number of entries that the cache can
	// store. Must be greater than 0. On insertion beyond capacity the
	// single least-recently-used entry is evicted.
	Capacity int
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{Capacity: 1000}
}

// Validate checks if the configuration values are valid.
// Returns an error if any configuration parameter is invalid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// lruCache adapts hashicorp/golang-lru to the entity cache contract:
// fixed capacity, strict single-entry LRU eviction, recency refreshed by
// Get and Set but not by Has, no TTL. Entries live until evicted by
// capacity pressure or explicitly deleted.
type lruCache struct {
	entries *lru.Cache[string, any]
}

// NewLRU creates a bounded LRU cache with the provided configuration.
// golang-lru guards its recency list with an internal mutex, so the
// adapter adds no locking of its own; concurrent Get/Set/Delete from
// multiple request handlers cannot corrupt ordering or lose entries.
func NewLRU(cfg Config) (*lruCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, err := lru.New[string, any](cfg.Capacity)
	if err != nil {
		return nil, err
	}

	return &lruCache{entries: entries}, nil
}

// Has reports key presence. It uses Contains, which does not touch the
// recency list, so observability probes never reorder entries.
func (c *lruCache) Has(key string) bool {
	return c.entries.Contains(key)
}

// Get returns the snapshot at key and marks it most recently used.
func (c *lruCache) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

// Set stores value at key, evicting the oldest entry when at capacity.
func (c *lruCache) Set(key string, value any) {
	c.entries.Add(key, value)
}

// Delete removes key and reports whether an entry was present.
func (c *lruCache) Delete(key string) bool {
	return c.entries.Remove(key)
}

// Len returns the number of live entries.
func (c *lruCache) Len() int {
	return c.entries.Len()
}
