package cache

// EntityCache is the process-wide bounded cache that entity snapshots are
// read through. Implementations must be safe for concurrent use from many
// request handlers; Get and Set refresh recency, Has must not so callers
// can probe cache status without reordering entries.
type EntityCache interface {
	// Has reports whether key is currently cached.
	Has(key string) bool
	// Get returns the snapshot stored at key and refreshes its recency.
	Get(key string) (any, bool)
	// Set stores value at key, evicting the least recently used entry
	// when the cache is at capacity. Set is atomic from the cache's
	// perspective; a concurrent Set for the same key wins by last write.
	Set(key string, value any)
	// Delete removes key and reports whether an entry was present.
	Delete(key string) bool
	// Len returns the number of live entries.
	Len() int
}

// As retrieves key from c and asserts the snapshot to T. A snapshot of a
// different type is reported as absent; the caller treats it as a miss
// and overwrites it on the next population.
func As[T any](c EntityCache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	snapshot, ok := v.(T)
	if !ok {
		return zero, false
	}
	return snapshot, true
}
