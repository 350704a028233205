package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// User is the authoritative user record owned by the persistence layer.
// Cached copies are snapshots, not the source of truth.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `bun:"id,pk" json:"id"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Firstname string    `bun:"firstname" json:"firstname"`
	Lastname  string    `bun:"lastname" json:"lastname"`
	Password  string    `bun:"password" json:"-"`
	CreatedAt time.Time `bun:"created_at,nullzero" json:"createdAt,omitempty"`
}

// UserPatch is the flat, partial update payload accepted from callers.
// Nil fields are left untouched by the store.
type UserPatch struct {
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// Validate checks field shapes. Nil fields are skipped; an empty patch is
// valid and results in a no-op write against the target.
func (p UserPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Firstname, validation.NilOrNotEmpty, validation.Length(1, 128)),
		validation.Field(&p.Lastname, validation.NilOrNotEmpty, validation.Length(1, 128)),
		validation.Field(&p.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&p.Password, validation.NilOrNotEmpty, validation.Length(8, 128)),
	)
}
