package bunstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/userhub/userhub/model"
	"github.com/userhub/userhub/store"
)

// Interface assertion to ensure UserStore satisfies the full contract.
var _ store.Store[model.User, store.UserUpdate] = (*UserStore)(nil)

// UserStore persists users through bun. Absent rows are reported as
// found=false, never as an error.
type UserStore struct {
	db *bun.DB
}

// NewUserStore creates a user store on db.
func NewUserStore(db *bun.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByID fetches a user by primary id.
func (s *UserStore) GetByID(ctx context.Context, id string) (model.User, bool, error) {
	return s.getWhere(ctx, "u.id = ?", id)
}

// GetByEmail fetches a user by unique email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return s.getWhere(ctx, "u.email = ?", email)
}

// GetAll fetches every user ordered by id.
func (s *UserStore) GetAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.NewSelect().Model(&users).Order("u.id").Scan(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user, assigning a uuid when the id is empty.
func (s *UserStore) Create(ctx context.Context, record model.User) (model.User, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if _, err := s.db.NewInsert().Model(&record).Exec(ctx); err != nil {
		return model.User{}, err
	}
	return record, nil
}

// UpdateByID applies the nested update document to the user with id and
// returns the post-update snapshot.
func (s *UserStore) UpdateByID(ctx context.Context, id string, update store.UserUpdate) (model.User, bool, error) {
	return s.updateWhere(ctx, update, "id = ?", id, "u.id = ?", id)
}

// UpdateByEmail applies the nested update document to the user with
// email. When the update changes the email, the returned snapshot is
// re-read by the new address.
func (s *UserStore) UpdateByEmail(ctx context.Context, email string, update store.UserUpdate) (model.User, bool, error) {
	lookup := email
	if a := update.Account; a != nil && a.Email != nil {
		lookup = *a.Email
	}
	return s.updateWhere(ctx, update, "email = ?", email, "u.email = ?", lookup)
}

// DeleteByID removes the user with id and returns its last snapshot.
func (s *UserStore) DeleteByID(ctx context.Context, id string) (model.User, bool, error) {
	return s.deleteWhere(ctx, "u.id = ?", "id = ?", id)
}

// DeleteByEmail removes the user with email and returns its last snapshot.
func (s *UserStore) DeleteByEmail(ctx context.Context, email string) (model.User, bool, error) {
	return s.deleteWhere(ctx, "u.email = ?", "email = ?", email)
}

func (s *UserStore) getWhere(ctx context.Context, clause string, arg any) (model.User, bool, error) {
	var u model.User
	err := s.db.NewSelect().Model(&u).Where(clause, arg).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, err
	}
	return u, true, nil
}

func (s *UserStore) updateWhere(ctx context.Context, update store.UserUpdate, whereClause string, whereArg any, selectClause string, selectArg any) (model.User, bool, error) {
	q := s.db.NewUpdate().Model((*model.User)(nil)).Where(whereClause, whereArg)

	assigned := false
	if n := update.Name; n != nil {
		if n.First != nil {
			q = q.Set("firstname = ?", *n.First)
			assigned = true
		}
		if n.Last != nil {
			q = q.Set("lastname = ?", *n.Last)
			assigned = true
		}
	}
	if a := update.Account; a != nil {
		if a.Email != nil {
			q = q.Set("email = ?", *a.Email)
			assigned = true
		}
		if a.Password != nil {
			q = q.Set("password = ?", *a.Password)
			assigned = true
		}
	}
	if !assigned {
		// Empty document: nothing to write, but existence still matters.
		return s.getWhere(ctx, selectClause, selectArg)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return model.User{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.User{}, false, err
	}
	if affected == 0 {
		return model.User{}, false, nil
	}
	return s.getWhere(ctx, selectClause, selectArg)
}

func (s *UserStore) deleteWhere(ctx context.Context, selectClause, deleteClause string, arg any) (model.User, bool, error) {
	record, found, err := s.getWhere(ctx, selectClause, arg)
	if err != nil || !found {
		return model.User{}, false, err
	}
	if _, err := s.db.NewDelete().Model((*model.User)(nil)).Where(deleteClause, arg).Exec(ctx); err != nil {
		return model.User{}, false, err
	}
	return record, true, nil
}
