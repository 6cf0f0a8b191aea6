package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
	"github.com/d60-Lab/socialgraph/internal/storage"
	"github.com/d60-Lab/socialgraph/pkg/logger"
)

var ErrUploadFailed = errors.New("upload failed")

// AssetRef 指向已落库的媒体资产
type AssetRef struct {
	Key string
	URL string
}

// MediaService 媒体生命周期：替换删旧、失败不改元数据。
// 删旧是 best-effort：删除失败记日志继续，保上传可用性。
type MediaService interface {
	// ReplaceAvatar 上传新头像并替换引用；旧对象先行 best-effort 删除。
	// 上传失败时账号引用保持不变。
	ReplaceAvatar(ctx context.Context, accountID string, r io.Reader, filename string) (*AssetRef, error)
	// ClearAvatar best-effort 删除对象后总是清空引用
	ClearAvatar(ctx context.Context, accountID string) error
	// PublishMedia 上传发布文件并创建 Publication；上传失败不建记录
	PublishMedia(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (*model.Publication, *AssetRef, error)
}

type mediaService struct {
	userRepo repository.UserRepository
	pubRepo  repository.PublicationRepository
	store    storage.ObjectStore
}

func NewMediaService(
	userRepo repository.UserRepository,
	pubRepo repository.PublicationRepository,
	store storage.ObjectStore,
) MediaService {
	return &mediaService{userRepo: userRepo, pubRepo: pubRepo, store: store}
}

func (s *mediaService) ReplaceAvatar(ctx context.Context, accountID string, r io.Reader, filename string) (*AssetRef, error) {
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 先删旧：失败只告警，不阻塞新上传
	if user.Avatar != "" {
		if err := s.store.Delete(ctx, user.Avatar); err != nil {
			logger.Warn("old avatar delete failed",
				zap.String("account", accountID), zap.String("key", user.Avatar), zap.Error(err))
		}
	}

	key := avatarKey(accountID, filename)
	if err := s.store.Upload(ctx, key, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := s.userRepo.Updates(ctx, accountID, map[string]any{"avatar": key}); err != nil {
		return nil, err
	}
	return &AssetRef{Key: key, URL: s.store.PublicURL(key)}, nil
}

func (s *mediaService) ClearAvatar(ctx context.Context, accountID string) error {
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Avatar != "" {
		if err := s.store.Delete(ctx, user.Avatar); err != nil {
			logger.Warn("avatar delete failed",
				zap.String("account", accountID), zap.String("key", user.Avatar), zap.Error(err))
		}
	}
	return s.userRepo.Updates(ctx, accountID, map[string]any{"avatar": ""})
}

func (s *mediaService) PublishMedia(ctx context.Context, actorID string, r io.Reader, filename, contentType string) (*model.Publication, *AssetRef, error) {
	key := publicationKey(filename)
	if err := s.store.Upload(ctx, key, r); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	pub, err := s.pubRepo.Create(ctx, actorID, key, kindFromContentType(contentType))
	if err != nil {
		return nil, nil, err
	}
	return pub, &AssetRef{Key: key, URL: s.store.PublicURL(key)}, nil
}
