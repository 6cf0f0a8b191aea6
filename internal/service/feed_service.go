package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
	"github.com/d60-Lab/socialgraph/pkg/logger"
)

// FeedService 读时扇出：逐关注账号取最近发布，合并后全局按时间倒序
type FeedService interface {
	Feed(ctx context.Context, actorID string) ([]*model.Publication, error)
	// Publications 某账号的全部发布（时间倒序）；handle 不存在返回 ErrUserNotFound
	Publications(ctx context.Context, username string) ([]*model.Publication, error)
}

type feedService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	pubRepo    repository.PublicationRepository
	perSource  int
	fanout     int
}

func NewFeedService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	pubRepo repository.PublicationRepository,
	perSource, fanout int,
) FeedService {
	if perSource <= 0 {
		perSource = 5
	}
	if fanout <= 0 {
		fanout = 8
	}
	return &feedService{
		userRepo:   userRepo,
		followRepo: followRepo,
		pubRepo:    pubRepo,
		perSource:  perSource,
		fanout:     fanout,
	}
}

func (s *feedService) Feed(ctx context.Context, actorID string) ([]*model.Publication, error) {
	followeeIDs, err := s.followRepo.ListFolloweeIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if len(followeeIDs) == 0 {
		return []*model.Publication{}, nil
	}

	// 并发取各来源；单一来源失败只丢弃该来源，不让整个 feed 失败
	results := make([][]*model.Publication, len(followeeIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, id := range followeeIDs {
		i, id := i, id
		g.Go(func() error {
			pubs, err := s.pubRepo.ListByAuthor(gctx, id, s.perSource)
			if err != nil {
				logger.Warn("feed source fetch failed",
					zap.String("actor", actorID), zap.String("source", id), zap.Error(err))
				return nil
			}
			results[i] = pubs
			return nil
		})
	}
	_ = g.Wait()

	return mergeByRecency(results), nil
}

// mergeByRecency 合并各来源并做一次全局稳定排序（时间倒序，ID 兜底保证确定性）。
// 纯函数，便于单测。
func mergeByRecency(sources [][]*model.Publication) []*model.Publication {
	total := 0
	for _, s := range sources {
		total += len(s)
	}
	merged := make([]*model.Publication, 0, total)
	for _, s := range sources {
		merged = append(merged, s...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})
	return merged
}

func (s *feedService) Publications(ctx context.Context, username string) ([]*model.Publication, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.pubRepo.ListByAuthor(ctx, u.ID, 0)
}
