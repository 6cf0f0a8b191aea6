package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/socialgraph/internal/model"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *FollowerCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewFollowerCache(client, time.Minute)
}

func TestFollowerCacheRoundTrip(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	list := []UserSnapshot{
		{ID: "u1", Name: "Alice", Username: "alice", Avatar: "avatar/u1.png"},
		{ID: "u2", Name: "Bob", Username: "bob"},
	}
	key := FollowersKey("u3")

	_, ok := c.Get(ctx, key)
	require.False(t, ok)

	c.Set(ctx, key, list)
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	require.Equal(t, list, got)
}

func TestFollowerCacheInvalidate(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, FollowersKey("u1"), []UserSnapshot{{ID: "x"}})
	c.Set(ctx, FollowedsKey("u1"), []UserSnapshot{{ID: "y"}})

	require.NoError(t, c.Invalidate(ctx, FollowersKey("u1"), FollowedsKey("u1")))

	_, ok := c.Get(ctx, FollowersKey("u1"))
	require.False(t, ok)
	_, ok = c.Get(ctx, FollowedsKey("u1"))
	require.False(t, ok)
}

func TestFollowerCacheExpiry(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, FollowersKey("u1"), []UserSnapshot{{ID: "x"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, FollowersKey("u1"))
	require.False(t, ok)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *FollowerCache
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
	c.Set(ctx, "k", nil)
	require.NoError(t, c.Invalidate(ctx, "k"))
}

func TestSnapshotUsers(t *testing.T) {
	users := []*model.User{
		{ID: "u1", Name: "Alice", Username: "alice", Avatar: "a.png", Email: "alice@example.com"},
	}
	snaps := SnapshotUsers(users)
	require.Len(t, snaps, 1)
	// 快照不携带邮箱等私有字段
	require.Equal(t, UserSnapshot{ID: "u1", Name: "Alice", Username: "alice", Avatar: "a.png"}, snaps[0])
}

func TestInvalidatorDrainsQueue(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, FollowersKey("u1"), []UserSnapshot{{ID: "x"}})

	inv := NewInvalidator(c, 16)
	stop := inv.Start(1)
	inv.Enqueue(FollowersKey("u1"))

	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, FollowersKey("u1"))
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case d := <-inv.Metrics():
		require.GreaterOrEqual(t, d, time.Duration(0))
	case <-time.After(time.Second):
		t.Fatal("no invalidation latency sample")
	}

	require.NoError(t, stop(ctx))
}

func TestNilInvalidatorIsNoop(t *testing.T) {
	var inv *Invalidator
	stop := inv.Start(2)
	inv.Enqueue("k")
	require.Equal(t, 0, inv.QueueLen())
	require.Nil(t, inv.Metrics())
	require.NoError(t, stop(context.Background()))
}
