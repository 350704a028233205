package store

// UserUpdate is the nested update document the user store applies. A
// section is present only when at least one of its fields is; absent
// sections leave their columns untouched.
type UserUpdate struct {
	Name    *NameSection
	Account *AccountSection
}

// NameSection groups the display name fields.
type NameSection struct {
	First *string
	Last  *string
}

// AccountSection groups the account credential fields.
type AccountSection struct {
	Email    *string
	Password *string
}

// CommentUpdate is the nested update document for comments.
type CommentUpdate struct {
	Author  *AuthorSection
	Content *ContentSection
}

// AuthorSection groups the commenter identity fields.
type AuthorSection struct {
	Name  *string
	Email *string
}

// ContentSection carries the comment body.
type ContentSection struct {
	Body *string
}
