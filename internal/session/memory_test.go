package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, Session{AccountID: 7, Username: "reader"}, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sess, err := store.Get(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, &Session{AccountID: 7, Username: "reader"}, sess)

	// Two sessions for the same account get distinct tokens.
	other, err := store.Create(ctx, Session{AccountID: 7, Username: "reader"}, time.Hour)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Get(context.Background(), "no-such-token")
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	token, err := store.Create(ctx, Session{AccountID: 7, Username: "reader"}, time.Minute)
	assert.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	sess, err := store.Get(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess, "expired sessions resolve to no session")
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, Session{AccountID: 7, Username: "reader"}, time.Hour)
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, token))
	sess, err := store.Get(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, token))
}
