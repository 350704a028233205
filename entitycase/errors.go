package entitycase

import (
	"errors"
	"fmt"

	"github.com/userhub/userhub/cache"
)

// Sentinels for errors.Is matching across the error taxonomy. Concrete
// errors carry detail; these anchor identity.
var (
	// ErrInvalidRequest marks malformed or ambiguous lookup targets.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound marks fetches and writes addressing an absent entity.
	ErrNotFound = errors.New("not found")
)

// InvalidRequestError reports a malformed or ambiguous operation target,
// e.g. a mutation addressed at the whole collection. Caller-correctable.
type InvalidRequestError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// Is reports identity with ErrInvalidRequest for errors.Is matching.
func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NotFoundError reports that no entity exists for the identifier used.
// Cache state never causes nor fixes it.
type NotFoundError struct {
	Keyspace string
	Kind     cache.SelectorKind
	Value    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found by %s %q", e.Keyspace, e.Kind, e.Value)
}

// Is reports identity with ErrNotFound for errors.Is matching.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamError wraps a persistence failure. It is propagated unchanged
// in meaning and never retried here; the cache is left untouched when one
// occurs. Validation failures from patch payloads are not wrapped at all:
// they pass through before any store or cache interaction.
type UpstreamError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap exposes the underlying store error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}
