package entitycase

import (
	"context"

	"github.com/userhub/userhub/cache"
	"github.com/userhub/userhub/store"
)

// Patch is a flat, partial update payload. Validation runs before any
// store or cache interaction; a failure surfaces unchanged.
type Patch interface {
	Validate() error
}

// Mutation performs update, delete, and create writes for one entity
// keyspace and reconciles the shared cache afterwards.
//
// Only the key derived from the request's own identifier is invalidated.
// An entry cached for the same logical entity under the other identifier
// field survives and can serve a stale snapshot until it is evicted or
// refetched; unifying the two would require a secondary index
// (email -> id) that the current design does not keep.
type Mutation[T any, P Patch, U any] struct {
	keyspace  string
	cache     cache.EntityCache
	writer    store.Writer[T, U]
	creator   store.Creator[T]
	translate func(P) U
}

// NewMutation wires a mutation use case for one keyspace. translate maps
// the flat patch into the store's nested update document; it must be a
// pure function.
func NewMutation[T any, P Patch, U any](keyspace string, c cache.EntityCache, s store.Store[T, U], translate func(P) U) *Mutation[T, P, U] {
	return &Mutation[T, P, U]{keyspace: keyspace, cache: c, writer: s, creator: s, translate: translate}
}

// Update validates patch, applies it through the store path matching the
// selector's identifier field, and drops the matching cache entry on
// success. An absent target fails with NotFoundError and has no cache
// side effects. The updated snapshot is returned as confirmation.
func (m *Mutation[T, P, U]) Update(ctx context.Context, sel cache.Selector, patch P) (T, error) {
	var zero T

	if !sel.Single() {
		return zero, &InvalidRequestError{Reason: "update requires exactly one identifier"}
	}
	if err := patch.Validate(); err != nil {
		return zero, err
	}

	update := m.translate(patch)

	var (
		record T
		found  bool
		err    error
	)
	switch sel.Kind() {
	case cache.SelectByID:
		record, found, err = m.writer.UpdateByID(ctx, sel.Value(), update)
	case cache.SelectByEmail:
		record, found, err = m.writer.UpdateByEmail(ctx, sel.Value(), update)
	}
	if err != nil {
		return zero, &UpstreamError{Op: m.keyspace + " update", Err: err}
	}
	if !found {
		return zero, &NotFoundError{Keyspace: m.keyspace, Kind: sel.Kind(), Value: sel.Value()}
	}

	m.invalidate(sel)
	return record, nil
}

// Delete removes the addressed entity, drops the matching cache entry,
// and returns the last snapshot as confirmation.
func (m *Mutation[T, P, U]) Delete(ctx context.Context, sel cache.Selector) (T, error) {
	var zero T

	if !sel.Single() {
		return zero, &InvalidRequestError{Reason: "delete requires exactly one identifier"}
	}

	var (
		record T
		found  bool
		err    error
	)
	switch sel.Kind() {
	case cache.SelectByID:
		record, found, err = m.writer.DeleteByID(ctx, sel.Value())
	case cache.SelectByEmail:
		record, found, err = m.writer.DeleteByEmail(ctx, sel.Value())
	}
	if err != nil {
		return zero, &UpstreamError{Op: m.keyspace + " delete", Err: err}
	}
	if !found {
		return zero, &NotFoundError{Keyspace: m.keyspace, Kind: sel.Kind(), Value: sel.Value()}
	}

	m.invalidate(sel)
	return record, nil
}

// Create writes a new record through the store. The cache is left alone:
// collection reads are never cached, and the new entity enters the cache
// on its first single-entity read.
func (m *Mutation[T, P, U]) Create(ctx context.Context, record T) (T, error) {
	created, err := m.creator.Create(ctx, record)
	if err != nil {
		var zero T
		return zero, &UpstreamError{Op: m.keyspace + " create", Err: err}
	}
	return created, nil
}

// invalidate drops the cache entry at the key the request addressed.
func (m *Mutation[T, P, U]) invalidate(sel cache.Selector) {
	if key, ok := cache.DeriveKey(sel); ok {
		m.cache.Delete(key)
	}
}
