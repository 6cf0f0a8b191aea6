package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/socialgraph/internal/model"
)

// UserSnapshot contains the minimal account info follower/followed pages need.
type UserSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func SnapshotUser(u *model.User) UserSnapshot {
	return UserSnapshot{ID: u.ID, Name: u.Name, Username: u.Username, Avatar: u.Avatar}
}

func SnapshotUsers(users []*model.User) []UserSnapshot {
	out := make([]UserSnapshot, len(users))
	for i, u := range users {
		out[i] = SnapshotUser(u)
	}
	return out
}

// FollowerCache caches follower/followed list snapshots in Redis.
// A nil *FollowerCache is a valid no-op cache.
type FollowerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFollowerCache(client *redis.Client, ttl time.Duration) *FollowerCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &FollowerCache{client: client, ttl: ttl}
}

func FollowersKey(userID string) string { return fmt.Sprintf("followers:%s", userID) }
func FollowedsKey(userID string) string { return fmt.Sprintf("followeds:%s", userID) }

func (c *FollowerCache) Get(ctx context.Context, key string) ([]UserSnapshot, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var out []UserSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *FollowerCache) Set(ctx context.Context, key string, list []UserSnapshot) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *FollowerCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
