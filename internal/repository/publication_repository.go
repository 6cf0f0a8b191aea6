package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialgraph/internal/model"
)

type PublicationRepository interface {
	Create(ctx context.Context, userID, fileKey, typeFile string) (*model.Publication, error)
	GetByID(ctx context.Context, id string) (*model.Publication, error)
	// ListByAuthor 按创建时间倒序；limit <= 0 表示不限
	ListByAuthor(ctx context.Context, userID string, limit int) ([]*model.Publication, error)
}

type publicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(ctx context.Context, userID, fileKey, typeFile string) (*model.Publication, error) {
	p := &model.Publication{
		ID:        uuid.New().String(),
		UserID:    userID,
		FileKey:   fileKey,
		TypeFile:  typeFile,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *publicationRepository) GetByID(ctx context.Context, id string) (*model.Publication, error) {
	var p model.Publication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *publicationRepository) ListByAuthor(ctx context.Context, userID string, limit int) ([]*model.Publication, error) {
	var res []*model.Publication
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&res).Error
	return res, err
}
