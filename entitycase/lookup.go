package entitycase

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/userhub/userhub/cache"
	"github.com/userhub/userhub/store"
)

// Origin reports where a fetch result came from.
type Origin int

const (
	// OriginNone marks results the cache does not apply to (collection reads).
	OriginNone Origin = iota
	// OriginHit marks results served from the cache.
	OriginHit
	// OriginMiss marks results fetched fresh from the store and then cached.
	OriginMiss
)

// String returns the conventional header value for the origin.
func (o Origin) String() string {
	switch o {
	case OriginHit:
		return "HIT"
	case OriginMiss:
		return "MISS"
	default:
		return "NONE"
	}
}

// Lookup serves cache-checked reads for one entity keyspace. Single
// entity fetches consult the shared cache first and repopulate it on a
// miss; collection fetches bypass the cache entirely. Concurrent misses
// for the same key are collapsed into a single store fetch.
type Lookup[T any] struct {
	keyspace string
	cache    cache.EntityCache
	reader   store.Reader[T]
	metrics  *Metrics
	flight   singleflight.Group
}

// NewLookup wires a lookup use case for one keyspace. The keyspace names
// the entity type in errors and metrics. metrics may be nil.
func NewLookup[T any](keyspace string, c cache.EntityCache, r store.Reader[T], m *Metrics) *Lookup[T] {
	return &Lookup[T]{keyspace: keyspace, cache: c, reader: r, metrics: m}
}

// Execute fetches the single entity addressed by sel.
//
// The cache is checked first; on a hit the store is not touched and the
// origin is OriginHit. On a miss the store is queried by whichever
// identifier field the selector carries, the cache is populated only
// after the store confirmed existence, and the origin is OriginMiss.
// Absent entities fail with a NotFoundError and leave no cache entry
// behind (no negative caching). Collection selectors are rejected; use
// List for those.
func (l *Lookup[T]) Execute(ctx context.Context, sel cache.Selector) (T, Origin, error) {
	var zero T

	key, ok := cache.DeriveKey(sel)
	if !ok {
		return zero, OriginNone, &InvalidRequestError{Reason: "single-entity fetch requires an id or email"}
	}

	// A snapshot of an unexpected type means the key is shared with
	// another keyspace; fall through and let the fetch overwrite it.
	if snapshot, hit := cache.As[T](l.cache, key); hit {
		l.metrics.recordHit(l.keyspace)
		return snapshot, OriginHit, nil
	}

	v, err, _ := l.flight.Do(key, func() (any, error) {
		snapshot, found, err := l.fetch(ctx, sel)
		if err != nil {
			return nil, &UpstreamError{Op: l.keyspace + " fetch", Err: err}
		}
		if !found {
			return nil, &NotFoundError{Keyspace: l.keyspace, Kind: sel.Kind(), Value: sel.Value()}
		}
		l.cache.Set(key, snapshot)
		return snapshot, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.metrics.recordAbsent(l.keyspace)
		}
		return zero, OriginMiss, err
	}

	l.metrics.recordMiss(l.keyspace)
	return v.(T), OriginMiss, nil
}

// List fetches the full collection from the store. Collection results
// are never cached, so the origin is always OriginNone.
func (l *Lookup[T]) List(ctx context.Context) ([]T, Origin, error) {
	records, err := l.reader.GetAll(ctx)
	if err != nil {
		return nil, OriginNone, &UpstreamError{Op: l.keyspace + " list", Err: err}
	}
	return records, OriginNone, nil
}

// Cached reports whether a fetch for sel would currently be served from
// the cache. It does not disturb LRU ordering, so callers can probe it
// around Execute to set an observability header.
func (l *Lookup[T]) Cached(sel cache.Selector) bool {
	key, ok := cache.DeriveKey(sel)
	return ok && l.cache.Has(key)
}

func (l *Lookup[T]) fetch(ctx context.Context, sel cache.Selector) (T, bool, error) {
	switch sel.Kind() {
	case cache.SelectByID:
		return l.reader.GetByID(ctx, sel.Value())
	case cache.SelectByEmail:
		return l.reader.GetByEmail(ctx, sel.Value())
	default:
		// Unreachable: Execute rejects collection selectors before here.
		var zero T
		return zero, false, nil
	}
}
