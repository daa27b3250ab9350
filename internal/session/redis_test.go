package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/mentormatch/internal/config"
	"github.com/oggyb/mentormatch/internal/session"
)

func newStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	store := session.NewRedisStore(cfg)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)
	require.NoError(t, store.Ping(ctx))

	exp := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, store.Create(ctx, session.Session{ID: "sid-1", UserID: 7, ExpiresAt: exp}))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.UserID)
	assert.Equal(t, exp, got.ExpiresAt)

	members, err := mr.SMembers(store.KeyForUserSessions(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"sid-1"}, members)

	require.NoError(t, store.Delete(ctx, "sid-1"))
	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// idempotent
	require.NoError(t, store.Delete(ctx, "sid-1"))
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)

	require.NoError(t, store.Create(ctx, session.Session{ID: "sid-2", UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sid-2")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCreate_RejectsExpired(t *testing.T) {
	store, _ := newStore(t)
	err := store.Create(context.Background(), session.Session{ID: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
