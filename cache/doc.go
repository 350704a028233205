// Package cache provides the shared entity cache contract, cache key
// derivation, and cache configuration.
//
// # Overview
//
// This package exports the pieces every cached read or write path needs:
//
//   - Selector: a tagged lookup query (by id, by email, or collection)
//   - DeriveKey: deterministic cache key derivation from a Selector
//   - EntityCache: the bounded, LRU-evicting cache contract
//   - Config: capacity configuration and construction of the default cache
//
// The cache holds snapshots of entities owned by the persistence layer;
// it is never the source of truth. One EntityCache instance is shared by
// every use case in the process, constructed once at startup and passed
// by handle rather than reached through a package-level singleton, so
// tests get isolation from fresh instances.
//
// # Key Derivation
//
// Keys are derived from the identifier the request actually used:
//
//	key, ok := cache.DeriveKey(cache.ByID("u1"))            // "u1"
//	key, ok = cache.DeriveKey(cache.ByEmail("a@b.com"))     // "a@b.com"
//	key, ok = cache.DeriveKey(cache.ByID("c9").WithParent("p4")) // "p4::c9"
//	_, ok = cache.DeriveKey(cache.All())                    // ok == false
//
// Derivation is deterministic: the same identifier field and value always
// produce the same key. The same logical entity addressed through two
// different fields produces two independent keys; see the entitycase
// package for the consistency consequences.
//
// # Selector Construction
//
// Selectors carry exactly one identifier form by construction. Callers
// assembling a selector from raw request input should use ParseSelector,
// which applies the fixed precedence rule (id over email) when both are
// present.
//
// # Cache Semantics
//
// EntityCache implementations evict exactly the least-recently-used entry
// when an insert exceeds capacity. Get and Set refresh recency; Has does
// not, which makes it safe for callers that only want to report cache
// status (for example an X-Cache response header). There is no TTL:
// entries live until evicted or explicitly deleted by a mutation.
package cache
