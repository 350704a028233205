package entitycase

import (
	"github.com/userhub/userhub/model"
	"github.com/userhub/userhub/store"
)

// UserUpdateFromPatch translates the flat user patch into the store's
// nested update document. A section is attached only when at least one of
// its constituent fields is present.
func UserUpdateFromPatch(p model.UserPatch) store.UserUpdate {
	var update store.UserUpdate
	if p.Firstname != nil || p.Lastname != nil {
		update.Name = &store.NameSection{First: p.Firstname, Last: p.Lastname}
	}
	if p.Email != nil || p.Password != nil {
		update.Account = &store.AccountSection{Email: p.Email, Password: p.Password}
	}
	return update
}

// CommentUpdateFromPatch translates the flat comment patch into the
// store's nested update document.
func CommentUpdateFromPatch(p model.CommentPatch) store.CommentUpdate {
	var update store.CommentUpdate
	if p.Name != nil || p.Email != nil {
		update.Author = &store.AuthorSection{Name: p.Name, Email: p.Email}
	}
	if p.Body != nil {
		update.Content = &store.ContentSection{Body: p.Body}
	}
	return update
}
