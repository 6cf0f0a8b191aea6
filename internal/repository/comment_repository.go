package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialgraph/internal/model"
)

// CommentWithAuthor 评论连同作者摘要（join users）
type CommentWithAuthor struct {
	ID             string    `json:"id"`
	PublicationID  string    `json:"publication_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorUsername string    `json:"author_username"`
	AuthorAvatar   string    `json:"author_avatar"`
}

type CommentRepository interface {
	Create(ctx context.Context, publicationID, userID, body string) (*model.Comment, error)
	// ListByPublication 按创建顺序升序，带作者摘要
	ListByPublication(ctx context.Context, publicationID string) ([]*CommentWithAuthor, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, publicationID, userID, body string) (*model.Comment, error) {
	c := &model.Comment{
		ID:            uuid.New().String(),
		PublicationID: publicationID,
		UserID:        userID,
		Body:          body,
		CreatedAt:     time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByPublication(ctx context.Context, publicationID string) ([]*CommentWithAuthor, error) {
	var rows []*CommentWithAuthor
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id", "comments.publication_id", "comments.body", "comments.created_at",
			"users.id AS author_id", "users.name AS author_name",
			"users.username AS author_username", "users.avatar AS author_avatar").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.publication_id = ?", publicationID).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	return rows, err
}
