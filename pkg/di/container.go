// Package di provides the composition root wiring the shared entity
// cache, the persistence stores, and the use cases. Construct one
// Container per process; tests get isolation by constructing their own
// with a fresh cache.
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/userhub/userhub/cache"
	"github.com/userhub/userhub/entitycase"
	"github.com/userhub/userhub/model"
	"github.com/userhub/userhub/store"
	"github.com/userhub/userhub/store/bunstore"
)

// Keyspace labels used in errors and metrics.
const (
	UserKeyspace    = "user"
	CommentKeyspace = "comment"
)

// Container holds the singleton cache and the per-keyspace use cases.
type Container struct {
	cfg     cache.Config
	cache   cache.EntityCache
	metrics *entitycase.Metrics

	userLookup      *entitycase.Lookup[model.User]
	userMutation    *entitycase.Mutation[model.User, model.UserPatch, store.UserUpdate]
	commentLookup   *entitycase.Lookup[model.Comment]
	commentMutation *entitycase.Mutation[model.Comment, model.CommentPatch, store.CommentUpdate]
}

// New assembles a container from explicit stores. reg may be nil to skip
// metrics registration.
func New(
	cfg cache.Config,
	users store.Store[model.User, store.UserUpdate],
	comments store.Store[model.Comment, store.CommentUpdate],
	reg prometheus.Registerer,
) (*Container, error) {
	shared, err := cache.NewEntityCache(cfg)
	if err != nil {
		return nil, err
	}

	var metrics *entitycase.Metrics
	if reg != nil {
		metrics = entitycase.NewMetrics(reg)
	}

	return &Container{
		cfg:     cfg,
		cache:   shared,
		metrics: metrics,

		userLookup: entitycase.NewLookup[model.User](UserKeyspace, shared, users, metrics),
		userMutation: entitycase.NewMutation[model.User, model.UserPatch, store.UserUpdate](
			UserKeyspace, shared, users, entitycase.UserUpdateFromPatch),
		commentLookup: entitycase.NewLookup[model.Comment](CommentKeyspace, shared, comments, metrics),
		commentMutation: entitycase.NewMutation[model.Comment, model.CommentPatch, store.CommentUpdate](
			CommentKeyspace, shared, comments, entitycase.CommentUpdateFromPatch),
	}, nil
}

// NewWithBun assembles a container backed by bun stores on db.
func NewWithBun(cfg cache.Config, db *bun.DB, reg prometheus.Registerer) (*Container, error) {
	return New(cfg, bunstore.NewUserStore(db), bunstore.NewCommentStore(db), reg)
}

// NewWithDefaults assembles a bun-backed container using the default
// cache configuration.
func NewWithDefaults(db *bun.DB) (*Container, error) {
	return NewWithBun(cache.DefaultConfig(), db, nil)
}

// Cache returns the shared entity cache instance.
func (c *Container) Cache() cache.EntityCache { return c.cache }

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config { return c.cfg }

// UserLookup returns the cached user read use case.
func (c *Container) UserLookup() *entitycase.Lookup[model.User] { return c.userLookup }

// UserMutation returns the user write use case.
func (c *Container) UserMutation() *entitycase.Mutation[model.User, model.UserPatch, store.UserUpdate] {
	return c.userMutation
}

// CommentLookup returns the cached comment read use case.
func (c *Container) CommentLookup() *entitycase.Lookup[model.Comment] { return c.commentLookup }

// CommentMutation returns the comment write use case.
func (c *Container) CommentMutation() *entitycase.Mutation[model.Comment, model.CommentPatch, store.CommentUpdate] {
	return c.commentMutation
}
