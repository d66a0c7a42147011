package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Set(ctx, &Session{CandidateID: "c1"}))

	session, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", session.CandidateID)
	assert.Empty(t, session.InterviewID)

	// Updating the pointer replaces it in place.
	session.InterviewID = "i1"
	require.NoError(t, store.Set(ctx, session))

	stored, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "i1", stored.InterviewID)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing an empty store is a no-op.
	require.NoError(t, store.Clear(ctx))
}

func TestMemorySessionStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	require.NoError(t, store.Set(ctx, &Session{CandidateID: "c1", InterviewID: "i1"}))

	first, err := store.Get(ctx)
	require.NoError(t, err)
	first.InterviewID = "mutated"

	second, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "i1", second.InterviewID, "mutating a returned session must not touch the store")
}
