// Package entitycase implements the cache-checked read and write use
// cases that sit between request handlers and the persistence stores.
//
// # Overview
//
// Two generic use cases cover the lifecycle of a cached entity keyspace:
//
//   - Lookup[T]: cache-first single-entity reads plus uncached collection
//     reads, reporting the cache origin (HIT, MISS, or NONE) of every
//     result
//   - Mutation[T, P, U]: update, delete, and create writes that go
//     straight through to the store and reconcile the cache afterwards
//
// Both share one process-wide cache.EntityCache handed in by the
// composition root; neither owns it.
//
// # Read Protocol
//
//  1. Derive the cache key from the selector. Collection selectors have
//     no key; List bypasses the cache entirely.
//  2. On a cache hit, return the snapshot without touching the store.
//  3. On a miss, fetch by the identifier field the selector carries
//     (id-based and email-based lookups are distinct store operations).
//  4. An absent entity fails with NotFoundError and caches nothing.
//  5. A found entity is cached at the derived key, then returned.
//
// Population is never speculative: the cache is written only after the
// store confirmed existence. Concurrent misses for one key are collapsed
// into a single store fetch through singleflight; correctness does not
// depend on this, it only avoids duplicate work.
//
// # Write Protocol
//
// A mutation needs exactly one identifier; ambiguous or collection
// targets fail with InvalidRequestError before anything else runs. The
// flat patch is validated, translated into the store's nested update
// document, and written through the path matching the identifier field.
// On success the cache entry at the key derived from that same
// identifier is deleted and the affected snapshot returned.
//
// # Known Staleness Window
//
// The cache keys an entity by the identifier the fetch used, so one
// logical entity fetched by id and later by email occupies two entries.
// A mutation invalidates only the entry matching its own identifier
// field; the sibling entry survives until evicted or overwritten and can
// serve a pre-mutation snapshot as a HIT. Closing the window would need
// a secondary index (email -> id) that this design deliberately omits.
//
// # Error Taxonomy
//
//   - InvalidRequestError: malformed or ambiguous target, caller-correctable
//   - NotFoundError: no entity for the identifier; matches ErrNotFound
//   - patch validation failures: passed through untouched, before any
//     cache or store interaction
//   - UpstreamError: store failure, wrapped with the failing operation
//     and unwrappable to the cause; the cache is left untouched
//
// Nothing is retried here; retry policy belongs to the store client.
package entitycase
