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

var _ store.Store[model.Comment, store.CommentUpdate] = (*CommentStore)(nil)

// CommentStore persists comments through bun. The post association is a
// plain column; lookups stay keyed by id or commenter email, matching the
// persistence contract.
type CommentStore struct {
	db *bun.DB
}

// NewCommentStore creates a comment store on db.
func NewCommentStore(db *bun.DB) *CommentStore {
	return &CommentStore{db: db}
}

// GetByID fetches a comment by primary id.
func (s *CommentStore) GetByID(ctx context.Context, id string) (model.Comment, bool, error) {
	return s.getWhere(ctx, "c.id = ?", id)
}

// GetByEmail fetches a comment by the commenter's unique email.
func (s *CommentStore) GetByEmail(ctx context.Context, email string) (model.Comment, bool, error) {
	return s.getWhere(ctx, "c.email = ?", email)
}

// GetAll fetches every comment ordered by id.
func (s *CommentStore) GetAll(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.db.NewSelect().Model(&comments).Order("c.id").Scan(ctx); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create inserts a new comment, assigning a uuid when the id is empty.
func (s *CommentStore) Create(ctx context.Context, record model.Comment) (model.Comment, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if _, err := s.db.NewInsert().Model(&record).Exec(ctx); err != nil {
		return model.Comment{}, err
	}
	return record, nil
}

// UpdateByID applies the nested update document to the comment with id.
func (s *CommentStore) UpdateByID(ctx context.Context, id string, update store.CommentUpdate) (model.Comment, bool, error) {
	return s.updateWhere(ctx, update, "id = ?", id, "c.id = ?", id)
}

// UpdateByEmail applies the nested update document to the comment with
// the commenter email. When the update changes the email, the returned
// snapshot is re-read by the new address.
func (s *CommentStore) UpdateByEmail(ctx context.Context, email string, update store.CommentUpdate) (model.Comment, bool, error) {
	lookup := email
	if a := update.Author; a != nil && a.Email != nil {
		lookup = *a.Email
	}
	return s.updateWhere(ctx, update, "email = ?", email, "c.email = ?", lookup)
}

// DeleteByID removes the comment with id and returns its last snapshot.
func (s *CommentStore) DeleteByID(ctx context.Context, id string) (model.Comment, bool, error) {
	return s.deleteWhere(ctx, "c.id = ?", "id = ?", id)
}

// DeleteByEmail removes the comment with the commenter email.
func (s *CommentStore) DeleteByEmail(ctx context.Context, email string) (model.Comment, bool, error) {
	return s.deleteWhere(ctx, "c.email = ?", "email = ?", email)
}

func (s *CommentStore) getWhere(ctx context.Context, clause string, arg any) (model.Comment, bool, error) {
	var c model.Comment
	err := s.db.NewSelect().Model(&c).Where(clause, arg).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, false, nil
	}
	if err != nil {
		return model.Comment{}, false, err
	}
	return c, true, nil
}

func (s *CommentStore) updateWhere(ctx context.Context, update store.CommentUpdate, whereClause string, whereArg any, selectClause string, selectArg any) (model.Comment, bool, error) {
	q := s.db.NewUpdate().Model((*model.Comment)(nil)).Where(whereClause, whereArg)

	assigned := false
	if a := update.Author; a != nil {
		if a.Name != nil {
			q = q.Set("name = ?", *a.Name)
			assigned = true
		}
		if a.Email != nil {
			q = q.Set("email = ?", *a.Email)
			assigned = true
		}
	}
	if c := update.Content; c != nil {
		if c.Body != nil {
			q = q.Set("body = ?", *c.Body)
			assigned = true
		}
	}
	if !assigned {
		return s.getWhere(ctx, selectClause, selectArg)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return model.Comment{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Comment{}, false, err
	}
	if affected == 0 {
		return model.Comment{}, false, nil
	}
	return s.getWhere(ctx, selectClause, selectArg)
}

func (s *CommentStore) deleteWhere(ctx context.Context, selectClause, deleteClause string, arg any) (model.Comment, bool, error) {
	record, found, err := s.getWhere(ctx, selectClause, arg)
	if err != nil || !found {
		return model.Comment{}, false, err
	}
	if _, err := s.db.NewDelete().Model((*model.Comment)(nil)).Where(deleteClause, arg).Exec(ctx); err != nil {
		return model.Comment{}, false, err
	}
	return record, true, nil
}
