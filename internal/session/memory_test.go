package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, int64(7), sess.UserID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.ID, got.ID)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, sess.ID))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, -time.Minute)
	require.NoError(t, err)

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// A later Create sweeps the expired record out of the map entirely.
	_, err = store.Create(ctx, 8, time.Hour)
	require.NoError(t, err)
	store.mu.RLock()
	_, stillThere := store.sessions[sess.ID]
	store.mu.RUnlock()
	assert.False(t, stillThere)
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a, err := store.Create(ctx, 1, time.Hour)
	require.NoError(t, err)
	b, err := store.Create(ctx, 2, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
