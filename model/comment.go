package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// Comment is a sub-entity associated with a post. Email is the
// commenter's address and doubles as the secondary lookup field, so it
// carries a unique constraint the way the user email does.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID     string `bun:"id,pk" json:"id"`
	PostID string `bun:"post_id,notnull" json:"postId"`
	Name   string `bun:"name" json:"name"`
	Email  string `bun:"email,unique" json:"email"`
	Body   string `bun:"body" json:"body"`
}

// CommentPatch is the flat, partial update payload for comments.
type CommentPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Body  *string `json:"body,omitempty"`
}

// Validate checks field shapes. Nil fields are skipped.
func (p CommentPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 128)),
		validation.Field(&p.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&p.Body, validation.NilOrNotEmpty, validation.Length(1, 4096)),
	)
}
