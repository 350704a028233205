package cache

import (
	"github.com/userhub/userhub/internal/cacheinfra"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	// Capacity is the maximum number of entries held at once. Fixed for
	// the life of the cache.
	Capacity int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{Capacity: cacheinfra.DefaultConfig().Capacity}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewEntityCache constructs the default bounded LRU cache using the
// provided configuration.
func NewEntityCache(cfg Config) (EntityCache, error) {
	return cacheinfra.NewLRU(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{Capacity: c.Capacity}
}
