package article

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory store implementing the same conditional
// semantics as the SQL repository: mutations match on id AND owner in one
// step and report rows affected.
type fakeStore struct {
	articles map[int64]*Article
	nextID   int64
	loadHook func() // runs after every successful GetByID; used to simulate races
}

func newFakeStore() *fakeStore {
	return &fakeStore{articles: map[int64]*Article{}, nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, authorID int64, title, body string) (*Article, error) {
	now := time.Now()
	a := &Article{
		ID:        f.nextID,
		Title:     title,
		Body:      body,
		Author:    Author{ID: authorID, Username: "user"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.articles[a.ID] = a
	f.nextID++
	return copyOf(a), nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyOf(a)
	if f.loadHook != nil {
		f.loadHook()
	}
	return out, nil
}

func (f *fakeStore) List(_ context.Context) ([]*Article, error) {
	out := []*Article{}
	for _, a := range f.articles {
		out = append(out, copyOf(a))
	}
	return out, nil
}

func (f *fakeStore) UpdateIfOwned(_ context.Context, id, ownerID int64, title, body string) (int64, error) {
	a, ok := f.articles[id]
	if !ok || a.Author.ID != ownerID {
		return 0, nil
	}
	a.Title = title
	a.Body = body
	a.UpdatedAt = a.UpdatedAt.Add(time.Second)
	return 1, nil
}

func (f *fakeStore) DeleteIfOwned(_ context.Context, id, ownerID int64) (int64, error) {
	a, ok := f.articles[id]
	if !ok || a.Author.ID != ownerID {
		return 0, nil
	}
	delete(f.articles, id)
	return 1, nil
}

func copyOf(a *Article) *Article {
	c := *a
	return &c
}

func TestUpdateByOwner(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, 1, "t1", "b1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, created.ID, "t2", "b2")
	require.NoError(t, err)

	assert.Equal(t, "t2", updated.Title)
	assert.Equal(t, "b2", updated.Body)
	assert.Equal(t, int64(1), updated.Author.ID)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateByNonOwner(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, 1, "t1", "b1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, created.ID, "hijacked", "hijacked")
	assert.ErrorIs(t, err, ErrNotOwner)

	// Content must be untouched after the rejection.
	current, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t1", current.Title)
	assert.Equal(t, "b1", current.Body)
}

func TestUpdateMissingArticle(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Update(context.Background(), 1, 999999, "t", "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateConcurrentlyDeleted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, 1, "t1", "b1")
	require.NoError(t, err)

	// The article disappears between the authorizing read and the
	// conditional write. The service must report not-found, not success.
	store.loadHook = func() { delete(store.articles, created.ID) }

	_, err = svc.Update(ctx, 1, created.ID, "t2", "b2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByOwner(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, 1, "t1", "b1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete finds nothing; no other error surfaces.
	err = svc.Delete(ctx, 1, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteByNonOwner(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(ctx, 1, "t1", "b1")
	require.NoError(t, err)

	err = svc.Delete(ctx, 2, created.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, authorizeOwner(1, 1))
	assert.ErrorIs(t, authorizeOwner(1, 2), ErrNotOwner)
	assert.ErrorIs(t, authorizeOwner(2, 1), ErrNotOwner)
}
