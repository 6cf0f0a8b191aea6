package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
)

var ErrPublicationNotFound = errors.New("publication not found")

// EngagementService 点赞与评论
type EngagementService interface {
	HasLiked(ctx context.Context, publicationID, actorID string) (bool, error)
	// AddLike 幂等；返回是否产生了新点赞
	AddLike(ctx context.Context, publicationID, actorID string) (bool, error)
	RemoveLike(ctx context.Context, publicationID, actorID string) (bool, error)
	CountLikes(ctx context.Context, publicationID string) (int64, error)
	AddComment(ctx context.Context, publicationID, actorID, body string) (*model.Comment, error)
	Comments(ctx context.Context, publicationID string) ([]*repository.CommentWithAuthor, error)
}

type engagementService struct {
	pubRepo     repository.PublicationRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(
	pubRepo repository.PublicationRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) EngagementService {
	return &engagementService{pubRepo: pubRepo, likeRepo: likeRepo, commentRepo: commentRepo}
}

// requirePublication 点赞/评论的前置校验：目标发布必须存在
func (s *engagementService) requirePublication(ctx context.Context, publicationID string) error {
	p, err := s.pubRepo.GetByID(ctx, publicationID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPublicationNotFound
	}
	return nil
}

func (s *engagementService) HasLiked(ctx context.Context, publicationID, actorID string) (bool, error) {
	return s.likeRepo.Exists(ctx, publicationID, actorID)
}

func (s *engagementService) AddLike(ctx context.Context, publicationID, actorID string) (bool, error) {
	if err := s.requirePublication(ctx, publicationID); err != nil {
		return false, err
	}
	return s.likeRepo.Create(ctx, publicationID, actorID)
}

func (s *engagementService) RemoveLike(ctx context.Context, publicationID, actorID string) (bool, error) {
	return s.likeRepo.Delete(ctx, publicationID, actorID)
}

func (s *engagementService) CountLikes(ctx context.Context, publicationID string) (int64, error) {
	return s.likeRepo.Count(ctx, publicationID)
}

func (s *engagementService) AddComment(ctx context.Context, publicationID, actorID, body string) (*model.Comment, error) {
	if err := s.requirePublication(ctx, publicationID); err != nil {
		return nil, err
	}
	return s.commentRepo.Create(ctx, publicationID, actorID, body)
}

func (s *engagementService) Comments(ctx context.Context, publicationID string) ([]*repository.CommentWithAuthor, error) {
	return s.commentRepo.ListByPublication(ctx, publicationID)
}
