package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialgraph/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Publication{}, &model.Comment{}, &model.Like{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	u := &model.User{ID: id, Name: id, Username: id, Email: id + "@example.com", Password: "p"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestFollowCreateIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	require.True(t, created)

	// 重复关注不产生第二条边
	created, err = repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	require.False(t, created)

	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)
}

func TestFollowExistsAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)

	ok, err := repo.Exists(ctx, "a", "b")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, "b", "a")
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err := repo.Delete(ctx, "a", "b")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, "a", "b")
	require.NoError(t, err)
	require.False(t, deleted)

	ok, err = repo.Exists(ctx, "a", "b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFollowListFollowersJoinsUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	for _, follower := range []string{"bob", "carol"} {
		_, err := repo.Create(ctx, follower, "alice")
		require.NoError(t, err)
	}
	// 边的 follower 无对应账号时被 join 自然跳过
	_, err := repo.Create(ctx, "ghost", "alice")
	require.NoError(t, err)

	followers, err := repo.ListFollowers(ctx, "alice")
	require.NoError(t, err)
	names := make([]string, len(followers))
	for i, u := range followers {
		names[i] = u.Username
	}
	require.ElementsMatch(t, []string{"bob", "carol"}, names)
}

func TestFollowListFolloweds(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("u%d", i)
		seedUser(t, db, id)
		_, err := repo.Create(ctx, "alice", id)
		require.NoError(t, err)
	}

	followeds, err := repo.ListFolloweds(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, followeds, 3)

	ids, err := repo.ListFolloweeIDs(ctx, "alice")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"u0", "u1", "u2"}, ids)
}
