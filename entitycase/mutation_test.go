package entitycase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/userhub/userhub/cache"
	"github.com/userhub/userhub/model"
	"github.com/userhub/userhub/pkg/testsupport"
	"github.com/userhub/userhub/store"
)

// mockUserStore is a full store double that applies nested update
// documents in memory and tracks calls.
type mockUserStore struct {
	mu      sync.Mutex
	users   map[string]model.User
	calls   map[string]int
	failAll error
}

func newMockUserStore(users ...model.User) *mockUserStore {
	m := &mockUserStore{
		users: make(map[string]model.User),
		calls: make(map[string]int),
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

func (m *mockUserStore) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockUserStore) findByEmail(email string) (model.User, bool) {
	for _, u := range m.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func applyUserUpdate(u model.User, update store.UserUpdate) model.User {
	if n := update.Name; n != nil {
		if n.First != nil {
			u.Firstname = *n.First
		}
		if n.Last != nil {
			u.Lastname = *n.Last
		}
	}
	if a := update.Account; a != nil {
		if a.Email != nil {
			u.Email = *a.Email
		}
		if a.Password != nil {
			u.Password = *a.Password
		}
	}
	return u
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (model.User, bool, error) {
	m.record("GetByID")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.users[id]
	return u, ok, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (model.User, bool, error) {
	m.record("GetByEmail")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.findByEmail(email)
	return u, ok, nil
}

func (m *mockUserStore) GetAll(ctx context.Context) ([]model.User, error) {
	m.record("GetAll")
	if m.failAll != nil {
		return nil, m.failAll
	}
	users := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserStore) Create(ctx context.Context, record model.User) (model.User, error) {
	m.record("Create")
	if m.failAll != nil {
		return model.User{}, m.failAll
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	m.users[record.ID] = record
	return record, nil
}

func (m *mockUserStore) UpdateByID(ctx context.Context, id string, update store.UserUpdate) (model.User, bool, error) {
	m.record("UpdateByID")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.users[id]
	if !ok {
		return model.User{}, false, nil
	}
	u = applyUserUpdate(u, update)
	m.users[id] = u
	return u, true, nil
}

func (m *mockUserStore) UpdateByEmail(ctx context.Context, email string, update store.UserUpdate) (model.User, bool, error) {
	m.record("UpdateByEmail")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.findByEmail(email)
	if !ok {
		return model.User{}, false, nil
	}
	u = applyUserUpdate(u, update)
	m.users[u.ID] = u
	return u, true, nil
}

func (m *mockUserStore) DeleteByID(ctx context.Context, id string) (model.User, bool, error) {
	m.record("DeleteByID")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.users[id]
	if !ok {
		return model.User{}, false, nil
	}
	delete(m.users, id)
	return u, true, nil
}

func (m *mockUserStore) DeleteByEmail(ctx context.Context, email string) (model.User, bool, error) {
	m.record("DeleteByEmail")
	if m.failAll != nil {
		return model.User{}, false, m.failAll
	}
	u, ok := m.findByEmail(email)
	if !ok {
		return model.User{}, false, nil
	}
	delete(m.users, u.ID)
	return u, true, nil
}

// newUserPair wires a lookup and mutation sharing one cache and store,
// the way the composition root does.
func newUserPair(t *testing.T, users ...model.User) (*Lookup[model.User], *Mutation[model.User, model.UserPatch, store.UserUpdate], *mockUserStore, cache.EntityCache) {
	t.Helper()

	mock := newMockUserStore(users...)
	shared := newTestCache(t, 8)
	lookup := NewLookup[model.User]("user", shared, mock, nil)
	mutation := NewMutation[model.User, model.UserPatch, store.UserUpdate]("user", shared, mock, UserUpdateFromPatch)
	return lookup, mutation, mock, shared
}

func TestMutationUpdate_RequiresSingleTarget(t *testing.T) {
	_, mutation, mock, _ := newUserPair(t, testsupport.SeedUsers()...)

	_, err := mutation.Update(context.Background(), cache.All(), model.UserPatch{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
	if mock.count("UpdateByID")+mock.count("UpdateByEmail") != 0 {
		t.Error("store touched for an ambiguous target")
	}
}

func TestMutationUpdate_ValidationFailurePassesThrough(t *testing.T) {
	_, mutation, mock, shared := newUserPair(t, testsupport.SeedUsers()...)

	patch := model.UserPatch{Email: testsupport.StrPtr("not-an-email")}
	_, err := mutation.Update(context.Background(), cache.ByID("u1"), patch)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrNotFound) {
		t.Errorf("validation failure mapped into taxonomy: %v", err)
	}
	if mock.count("UpdateByID") != 0 {
		t.Error("store touched despite invalid patch")
	}
	if shared.Len() != 0 {
		t.Error("cache touched despite invalid patch")
	}
}

func TestMutationUpdate_NotFoundNoCacheSideEffects(t *testing.T) {
	lookup, mutation, _, shared := newUserPair(t, testsupport.SeedUsers()...)
	ctx := context.Background()

	// Warm an unrelated entry to observe that nothing changes.
	if _, _, err := lookup.Execute(ctx, cache.ByID("u2")); err != nil {
		t.Fatalf("warmup Execute() error: %v", err)
	}

	patch := model.UserPatch{Firstname: testsupport.StrPtr("X")}
	_, err := mutation.Update(ctx, cache.ByID("ghost"), patch)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !shared.Has("u2") || shared.Len() != 1 {
		t.Error("cache changed by a not-found mutation")
	}
}

func TestMutationDelete_InvalidatesRequestKey(t *testing.T) {
	lookup, mutation, _, shared := newUserPair(t, testsupport.SeedUsers()...)
	ctx := context.Background()

	if _, _, err := lookup.Execute(ctx, cache.ByID("u1")); err != nil {
		t.Fatalf("warmup Execute() error: %v", err)
	}
	if !shared.Has("u1") {
		t.Fatal("warmup did not populate the cache")
	}

	deleted, err := mutation.Delete(ctx, cache.ByID("u1"))
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if deleted.ID != "u1" {
		t.Errorf("deleted snapshot = %q, want u1", deleted.ID)
	}
	if shared.Has("u1") {
		t.Error("cache entry survived delete")
	}

	// A re-fetch now reports the entity gone.
	if _, _, err := lookup.Execute(ctx, cache.ByID("u1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("post-delete fetch err = %v, want ErrNotFound", err)
	}
}

func TestMutationUpdate_DropsStaleSnapshot(t *testing.T) {
	lookup, mutation, mock, shared := newUserPair(t, testsupport.SeedUsers()...)
	ctx := context.Background()

	before, _, err := lookup.Execute(ctx, cache.ByID("u1"))
	if err != nil {
		t.Fatalf("warmup Execute() error: %v", err)
	}

	patch := model.UserPatch{Firstname: testsupport.StrPtr("X")}
	updated, err := mutation.Update(ctx, cache.ByID("u1"), patch)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Firstname != "X" {
		t.Errorf("updated firstname = %q, want X", updated.Firstname)
	}
	if shared.Has("u1") {
		t.Error("stale entry still cached after update")
	}

	// The next read misses and sees the new snapshot, never the old one.
	fetches := mock.count("GetByID")
	after, origin, err := lookup.Execute(ctx, cache.ByID("u1"))
	if err != nil {
		t.Fatalf("post-update Execute() error: %v", err)
	}
	if origin != OriginMiss {
		t.Errorf("post-update origin = %v, want MISS", origin)
	}
	if mock.count("GetByID") != fetches+1 {
		t.Error("post-update read did not re-fetch")
	}
	if after.Firstname != "X" || after.Firstname == before.Firstname {
		t.Errorf("post-update snapshot = %+v, still pre-update", after)
	}
}

func TestMutationUpdate_OtherIdentifierEntrySurvives(t *testing.T) {
	lookup, mutation, _, shared := newUserPair(t, testsupport.SeedUsers()...)
	ctx := context.Background()

	// Cache the same logical entity under its email key.
	if _, _, err := lookup.Execute(ctx, cache.ByEmail("ada@example.com")); err != nil {
		t.Fatalf("warmup Execute() error: %v", err)
	}

	patch := model.UserPatch{Firstname: testsupport.StrPtr("X")}
	if _, err := mutation.Update(ctx, cache.ByID("u1"), patch); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	// Only the request's own key is reconciled; the email entry keeps
	// the pre-update snapshot until evicted or refetched.
	if !shared.Has("ada@example.com") {
		t.Fatal("email entry unexpectedly invalidated")
	}
	stale, _, err := lookup.Execute(ctx, cache.ByEmail("ada@example.com"))
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stale.Firstname == "X" {
		t.Error("email entry was refreshed; staleness window closed unexpectedly")
	}
}

func TestMutationUpdate_ByEmailPath(t *testing.T) {
	_, mutation, mock, _ := newUserPair(t, testsupport.SeedUsers()...)

	patch := model.UserPatch{Lastname: testsupport.StrPtr("Byron")}
	updated, err := mutation.Update(context.Background(), cache.ByEmail("ada@example.com"), patch)
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Lastname != "Byron" {
		t.Errorf("lastname = %q, want Byron", updated.Lastname)
	}
	if mock.count("UpdateByEmail") != 1 || mock.count("UpdateByID") != 0 {
		t.Error("email-addressed update did not take the email write path")
	}
}

func TestMutationDelete_RequiresSingleTarget(t *testing.T) {
	_, mutation, mock, _ := newUserPair(t, testsupport.SeedUsers()...)

	_, err := mutation.Delete(context.Background(), cache.All())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
	if mock.count("DeleteByID")+mock.count("DeleteByEmail") != 0 {
		t.Error("store touched for an ambiguous target")
	}
}

func TestMutationUpdate_UpstreamErrorWrapped(t *testing.T) {
	_, mutation, mock, shared := newUserPair(t, testsupport.SeedUsers()...)
	mock.failAll = errors.New("disk on fire")

	patch := model.UserPatch{Firstname: testsupport.StrPtr("X")}
	_, err := mutation.Update(context.Background(), cache.ByID("u1"), patch)

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("err %T is not *UpstreamError", err)
	}
	if !errors.Is(err, mock.failAll) {
		t.Error("upstream cause not preserved through Unwrap")
	}
	if shared.Len() != 0 {
		t.Error("cache touched despite upstream failure")
	}
}

func TestMutationCreate_WritesThrough(t *testing.T) {
	_, mutation, mock, shared := newUserPair(t)

	created, err := mutation.Create(context.Background(), model.User{
		Email:     "new@example.com",
		Firstname: "New",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" {
		t.Error("create did not assign an id")
	}
	if mock.count("Create") != 1 {
		t.Errorf("Create calls = %d, want 1", mock.count("Create"))
	}
	// New entities enter the cache on first read, not on create.
	if shared.Len() != 0 {
		t.Error("create populated the cache")
	}
}
