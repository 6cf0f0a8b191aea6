package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
)

func seedPublications(t *testing.T, db *gorm.DB, userID string, n int, base time.Time) []*model.Publication {
	t.Helper()
	out := make([]*model.Publication, n)
	for i := 0; i < n; i++ {
		p := &model.Publication{
			ID:        fmt.Sprintf("%s-p%02d", userID, i),
			UserID:    userID,
			FileKey:   fmt.Sprintf("publication/%s-%d.jpg", userID, i),
			TypeFile:  "image",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(p).Error)
		out[i] = p
	}
	return out
}

func TestFeedCapsPerSourceAndSorts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol") // 未被关注

	followRepo := repository.NewFollowRepository(db)
	_, err := followRepo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	seedPublications(t, db, bob.ID, 6, base)
	seedPublications(t, db, carol.ID, 3, base)

	svc := NewFeedService(
		repository.NewUserRepository(db),
		followRepo,
		repository.NewPublicationRepository(db),
		5, 4,
	)

	feed, err := svc.Feed(ctx, alice.ID)
	require.NoError(t, err)

	// bob 发了 6 条，feed 只取最新 5 条；carol 的从不出现
	require.Len(t, feed, 5)
	require.Equal(t, bob.ID+"-p05", feed[0].ID)
	require.Equal(t, bob.ID+"-p01", feed[4].ID)
	for _, p := range feed {
		require.Equal(t, bob.ID, p.UserID)
	}
	for i := 1; i < len(feed); i++ {
		require.False(t, feed[i].CreatedAt.After(feed[i-1].CreatedAt))
	}
}

func TestFeedEmptyWithoutFollows(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")

	svc := NewFeedService(
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewPublicationRepository(db),
		5, 4,
	)
	feed, err := svc.Feed(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Empty(t, feed)
}

// failingPubRepo 让指定作者的查询报错，模拟单一来源故障
type failingPubRepo struct {
	repository.PublicationRepository
	failFor string
}

func (r *failingPubRepo) ListByAuthor(ctx context.Context, userID string, limit int) ([]*model.Publication, error) {
	if userID == r.failFor {
		return nil, errors.New("source unavailable")
	}
	return r.PublicationRepository.ListByAuthor(ctx, userID, limit)
}

func TestFeedToleratesFailedSource(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	followRepo := repository.NewFollowRepository(db)
	_, err := followRepo.Create(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = followRepo.Create(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	seedPublications(t, db, bob.ID, 2, base)
	seedPublications(t, db, carol.ID, 2, base)

	pubRepo := &failingPubRepo{
		PublicationRepository: repository.NewPublicationRepository(db),
		failFor:               carol.ID,
	}
	svc := NewFeedService(repository.NewUserRepository(db), followRepo, pubRepo, 5, 4)

	// carol 来源失败只被丢弃，feed 本身不报错
	feed, err := svc.Feed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, p := range feed {
		require.Equal(t, bob.ID, p.UserID)
	}
}

func TestMergeByRecencyDeterministicTieBreak(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := &model.Publication{ID: "a", CreatedAt: ts}
	b := &model.Publication{ID: "b", CreatedAt: ts}
	newer := &model.Publication{ID: "c", CreatedAt: ts.Add(time.Minute)}

	got := mergeByRecency([][]*model.Publication{{a}, {newer, b}})
	require.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})

	// 来源顺序不同结果不变
	got = mergeByRecency([][]*model.Publication{{newer, b}, {a}})
	require.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestPublicationsByHandle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bob := seedUser(t, db, "bob")
	base := time.Now().Add(-time.Hour)
	seedPublications(t, db, bob.ID, 3, base)

	svc := NewFeedService(
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewPublicationRepository(db),
		5, 4,
	)

	pubs, err := svc.Publications(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, pubs, 3)
	require.Equal(t, bob.ID+"-p02", pubs[0].ID)

	_, err = svc.Publications(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}
