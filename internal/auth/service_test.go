package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	p := NewLocalProvider([]byte("k"), 2*time.Hour)
	require.NoError(t, p.Add("ana@x.co", RoleClient, "pw"))
	store := NewMemoryStore()
	return NewService(p, store, 12*time.Hour, nil), store
}

func TestLoginResolveLogout(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	sess, err := s.Login(ctx, " ana@x.co ", "pw")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, sess.User().Role)
	// capped by the 2h token, not the 12h session ttl
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), sess.ExpiresAt, time.Minute)

	got, ok := s.Resolve(ctx, sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.UserID, got.UserID)

	require.NoError(t, s.Logout(ctx, sess.ID))
	_, ok = s.Resolve(ctx, sess.ID)
	assert.False(t, ok)
	assert.NoError(t, s.Logout(ctx, sess.ID))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Login(context.Background(), "ana@x.co", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveExpired(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &Session{ID: "old", UserID: "u", ExpiresAt: time.Now().Add(-time.Minute)}))

	_, ok := s.Resolve(ctx, "old")
	assert.False(t, ok)
	_, ok = s.Resolve(ctx, "")
	assert.False(t, ok)
}

func TestPurgeOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, store.Create(ctx, &Session{ID: "live", ExpiresAt: time.Now().Add(time.Hour)}))

	PurgeOnce(ctx, store, newDiscardLogger())

	_, err := store.Get(ctx, "old", time.Time{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, "live", time.Now())
	assert.NoError(t, err)
}

func TestStartPurgeRejectsBadSpec(t *testing.T) {
	_, err := StartPurge("not a schedule", NewMemoryStore(), newDiscardLogger())
	assert.Error(t, err)

	c, err := StartPurge("@every 1h", NewMemoryStore(), newDiscardLogger())
	require.NoError(t, err)
	c.Stop()
}
