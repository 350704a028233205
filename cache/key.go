package cache

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// SelectorKind discriminates the lookup forms a request can use.
type SelectorKind int

const (
	// SelectAll addresses the full collection. No cache key is derivable.
	SelectAll SelectorKind = iota
	// SelectByID addresses a single entity by its primary id.
	SelectByID
	// SelectByEmail addresses a single entity by its unique email field.
	SelectByEmail
)

// String returns the identifier field name the kind stands for.
func (k SelectorKind) String() string {
	switch k {
	case SelectByID:
		return "id"
	case SelectByEmail:
		return "email"
	default:
		return "all"
	}
}

// Selector is a lookup query: by id, by email, or the whole collection.
// Selectors are built through the constructors so a value always carries
// exactly one identifier form; there is no way to express "both id and
// email" and the precedence question only arises in ParseSelector.
type Selector struct {
	kind   SelectorKind
	value  string
	parent string
}

// All returns a selector addressing the full collection.
func All() Selector {
	return Selector{kind: SelectAll}
}

// ByID returns a selector addressing a single entity by primary id.
func ByID(id string) Selector {
	return Selector{kind: SelectByID, value: id}
}

// ByEmail returns a selector addressing a single entity by email.
func ByEmail(email string) Selector {
	return Selector{kind: SelectByEmail, value: email}
}

// ParseSelector assembles a selector from raw request values. When both
// identifiers are supplied the id wins; when neither is, the selector
// addresses the collection.
func ParseSelector(id, email string) Selector {
	switch {
	case id != "":
		return ByID(id)
	case email != "":
		return ByEmail(email)
	default:
		return All()
	}
}

// WithParent scopes the selector to a parent association, e.g. comments
// under a post. The parent participates in key derivation only; the
// store is still addressed by the discriminator value alone.
func (s Selector) WithParent(parent string) Selector {
	s.parent = parent
	return s
}

// Kind returns the identifier form the selector uses.
func (s Selector) Kind() SelectorKind { return s.kind }

// Value returns the identifier value. Empty for collection selectors.
func (s Selector) Value() string { return s.value }

// Parent returns the parent association, if any.
func (s Selector) Parent() string { return s.parent }

// Single reports whether the selector addresses exactly one entity.
func (s Selector) Single() bool { return s.kind != SelectAll }

// DeriveKey computes the cache key for a selector. The key is the
// discriminator value verbatim, prefixed with the parent association when
// one is set ("<parent>::<value>"). Collection selectors have no key and
// report ok=false; collection reads are never cached.
//
// Population and invalidation call sites must both derive keys through
// this function so the join rule stays consistent between them. Note the
// same logical entity fetched once by id and once by email produces two
// independent keys; invalidating one leaves the other in place.
func DeriveKey(s Selector) (key string, ok bool) {
	switch s.kind {
	case SelectByID, SelectByEmail:
		if s.parent != "" {
			return s.parent + KeySeparator + s.value, true
		}
		return s.value, true
	default:
		return "", false
	}
}
