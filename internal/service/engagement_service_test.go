package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
)

func newEngagementFixture(t *testing.T) (*gorm.DB, repository.PublicationRepository, EngagementService) {
	t.Helper()
	db := setupTestDB(t)
	pubRepo := repository.NewPublicationRepository(db)
	svc := NewEngagementService(
		pubRepo,
		repository.NewLikeRepository(db),
		repository.NewCommentRepository(db),
	)
	return db, pubRepo, svc
}

func seedPublication(t *testing.T, pubRepo repository.PublicationRepository, userID string) *model.Publication {
	t.Helper()
	pub, err := pubRepo.Create(context.Background(), userID, "publication/x.png", "image")
	require.NoError(t, err)
	return pub
}

func TestAddLikeRequiresPublication(t *testing.T) {
	db, _, svc := newEngagementFixture(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.AddLike(context.Background(), "missing-pub", alice.ID)
	require.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestLikeLifecycle(t *testing.T) {
	db, pubRepo, svc := newEngagementFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	pub := seedPublication(t, pubRepo, bob.ID)

	created, err := svc.AddLike(ctx, pub.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, created)

	// 重复点赞幂等
	created, err = svc.AddLike(ctx, pub.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, created)

	liked, err := svc.HasLiked(ctx, pub.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, liked)

	n, err := svc.CountLikes(ctx, pub.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	removed, err := svc.RemoveLike(ctx, pub.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = svc.RemoveLike(ctx, pub.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, removed)

	n, err = svc.CountLikes(ctx, pub.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestAddCommentRequiresPublication(t *testing.T) {
	db, _, svc := newEngagementFixture(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.AddComment(context.Background(), "missing-pub", alice.ID, "hi")
	require.ErrorIs(t, err, ErrPublicationNotFound)
}

func TestCommentsReturnAuthorsInOrder(t *testing.T) {
	db, pubRepo, svc := newEngagementFixture(t)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	pub := seedPublication(t, pubRepo, bob.ID)

	_, err := svc.AddComment(ctx, pub.ID, alice.ID, "first")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, pub.ID, bob.ID, "second")
	require.NoError(t, err)

	rows, err := svc.Comments(ctx, pub.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "first", rows[0].Body)
	require.Equal(t, "alice", rows[0].AuthorUsername)
	require.Equal(t, "second", rows[1].Body)
	require.Equal(t, "bob", rows[1].AuthorUsername)
}
