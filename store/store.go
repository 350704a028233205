// Package store defines the persistence contract the use cases consume,
// plus the nested update documents the stores apply. Absence is always
// reported through a boolean, never as an error: a non-nil error from any
// operation means the store itself failed and is propagated unchanged.
package store

import "context"

// Reader is the read side of the persistence contract for one entity
// type. Id-based and email-based lookups are distinct operations.
type Reader[T any] interface {
	GetByID(ctx context.Context, id string) (T, bool, error)
	GetByEmail(ctx context.Context, email string) (T, bool, error)
	GetAll(ctx context.Context) ([]T, error)
}

// Writer is the write side. Update and delete are keyed by whichever
// identifier the caller supplied; the two paths stay distinct down to the
// storage engine. U is the store's nested update document for the entity.
// Update and delete return the post-write (for updates) or last (for
// deletes) snapshot of the affected record.
type Writer[T, U any] interface {
	UpdateByID(ctx context.Context, id string, update U) (T, bool, error)
	UpdateByEmail(ctx context.Context, email string, update U) (T, bool, error)
	DeleteByID(ctx context.Context, id string) (T, bool, error)
	DeleteByEmail(ctx context.Context, email string) (T, bool, error)
}

// Creator inserts new records. Stores assign a primary id when the
// record carries none.
type Creator[T any] interface {
	Create(ctx context.Context, record T) (T, error)
}

// Store bundles the full persistence surface for one entity type.
type Store[T, U any] interface {
	Reader[T]
	Writer[T, U]
	Creator[T]
}
