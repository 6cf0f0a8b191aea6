package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/socialgraph/internal/cache"
	"github.com/d60-Lab/socialgraph/internal/repository"
)

var (
	ErrFollowSelf   = errors.New("cannot follow self")
	ErrUserNotFound = errors.New("user not found")
)

// RelationshipService 关系链服务：关注边的读写 + 推荐
type RelationshipService interface {
	// Follow 返回是否产生了新边（幂等）
	Follow(ctx context.Context, actorID, username string) (bool, error)
	// Unfollow 返回是否删除了边
	Unfollow(ctx context.Context, actorID, username string) (bool, error)
	IsFollowing(ctx context.Context, actorID, username string) (bool, error)
	Followers(ctx context.Context, username string) ([]cache.UserSnapshot, error)
	Followed(ctx context.Context, username string) ([]cache.UserSnapshot, error)
	// SuggestUnfollowed 候选池内未关注且非自身的账号，按存储迭代序
	SuggestUnfollowed(ctx context.Context, actorID string) ([]cache.UserSnapshot, error)
}

type relationshipService struct {
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	followerCache *cache.FollowerCache
	invalidator   *cache.Invalidator
	candidatePool int
}

func NewRelationshipService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	followerCache *cache.FollowerCache,
	invalidator *cache.Invalidator,
	candidatePool int,
) RelationshipService {
	if candidatePool <= 0 {
		candidatePool = 50
	}
	return &relationshipService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		followerCache: followerCache,
		invalidator:   invalidator,
		candidatePool: candidatePool,
	}
}

func (s *relationshipService) resolve(ctx context.Context, username string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return u.ID, nil
}

func (s *relationshipService) Follow(ctx context.Context, actorID, username string) (bool, error) {
	targetID, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	if targetID == actorID {
		return false, ErrFollowSelf
	}
	created, err := s.followRepo.Create(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if created {
		s.invalidator.Enqueue(cache.FollowersKey(targetID), cache.FollowedsKey(actorID))
	}
	return created, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, actorID, username string) (bool, error) {
	targetID, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	deleted, err := s.followRepo.Delete(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidator.Enqueue(cache.FollowersKey(targetID), cache.FollowedsKey(actorID))
	}
	return deleted, nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, actorID, username string) (bool, error) {
	targetID, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, actorID, targetID)
}

func (s *relationshipService) Followers(ctx context.Context, username string) ([]cache.UserSnapshot, error) {
	userID, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	key := cache.FollowersKey(userID)
	if list, ok := s.followerCache.Get(ctx, key); ok {
		return list, nil
	}
	users, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := cache.SnapshotUsers(users)
	s.followerCache.Set(ctx, key, list)
	return list, nil
}

func (s *relationshipService) Followed(ctx context.Context, username string) ([]cache.UserSnapshot, error) {
	userID, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	key := cache.FollowedsKey(userID)
	if list, ok := s.followerCache.Get(ctx, key); ok {
		return list, nil
	}
	users, err := s.followRepo.ListFolloweds(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := cache.SnapshotUsers(users)
	s.followerCache.Set(ctx, key, list)
	return list, nil
}

func (s *relationshipService) SuggestUnfollowed(ctx context.Context, actorID string) ([]cache.UserSnapshot, error) {
	candidates, err := s.userRepo.ListCandidates(ctx, s.candidatePool)
	if err != nil {
		return nil, err
	}
	followedIDs, err := s.followRepo.ListFolloweeIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	followed := make(map[string]struct{}, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = struct{}{}
	}
	out := make([]cache.UserSnapshot, 0, len(candidates))
	for _, u := range candidates {
		if u.ID == actorID {
			continue
		}
		if _, ok := followed[u.ID]; ok {
			continue
		}
		out = append(out, cache.SnapshotUser(u))
	}
	return out, nil
}
