package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/socialgraph/internal/model"
)

type LikeRepository interface {
	// Create 幂等插入；返回是否产生了新点赞
	Create(ctx context.Context, publicationID, userID string) (bool, error)
	Delete(ctx context.Context, publicationID, userID string) (bool, error)
	Exists(ctx context.Context, publicationID, userID string) (bool, error)
	Count(ctx context.Context, publicationID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, publicationID, userID string) (bool, error) {
	l := &model.Like{
		ID:            uuid.New().String(),
		PublicationID: publicationID,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
	// 幂等：重复点赞不报错、不产生第二条记录
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, publicationID, userID string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Delete(&model.Like{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, publicationID, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("publication_id = ? AND user_id = ?", publicationID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, publicationID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("publication_id = ?", publicationID).
		Count(&cnt).Error
	return cnt, err
}
