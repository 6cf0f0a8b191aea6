package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/socialgraph/internal/model"
)

func TestPublicationListByAuthorCapAndOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPublicationRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		p := &model.Publication{
			ID:        fmt.Sprintf("p%d", i),
			UserID:    "bob",
			FileKey:   fmt.Sprintf("publication/p%d.jpg", i),
			TypeFile:  "image",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(p).Error)
	}

	pubs, err := repo.ListByAuthor(ctx, "bob", 5)
	require.NoError(t, err)
	require.Len(t, pubs, 5)
	// 最新在前，最旧的一条被截断
	require.Equal(t, "p5", pubs[0].ID)
	require.Equal(t, "p1", pubs[4].ID)
	for i := 1; i < len(pubs); i++ {
		require.False(t, pubs[i].CreatedAt.After(pubs[i-1].CreatedAt))
	}

	all, err := repo.ListByAuthor(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
}

func TestPublicationGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPublicationRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "bob", "publication/x.jpg", "image")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "publication/x.jpg", got.FileKey)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}
