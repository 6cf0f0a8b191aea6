package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/internal/storage"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

type Handler struct {
	accounts   service.AccountService
	relations  service.RelationshipService
	feeds      service.FeedService
	engagement service.EngagementService
	media      service.MediaService
	store      storage.ObjectStore
}

func New(
	accounts service.AccountService,
	relations service.RelationshipService,
	feeds service.FeedService,
	engagement service.EngagementService,
	media service.MediaService,
	store storage.ObjectStore,
) *Handler {
	return &Handler{
		accounts:   accounts,
		relations:  relations,
		feeds:      feeds,
		engagement: engagement,
		media:      media,
		store:      store,
	}
}

// fail 把服务层 sentinel 映射到统一响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPublicationNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

type userView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Description string `json:"description,omitempty"`
	SiteWeb     string `json:"site_web,omitempty"`
}

func (h *Handler) userView(u *model.User) userView {
	v := userView{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Email:       u.Email,
		Description: u.Description,
		SiteWeb:     u.SiteWeb,
	}
	if u.Avatar != "" {
		v.AvatarURL = h.store.PublicURL(u.Avatar)
	}
	return v
}

type publicationView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FileURL   string    `json:"file_url"`
	TypeFile  string    `json:"type_file"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handler) publicationViews(pubs []*model.Publication) []publicationView {
	out := make([]publicationView, len(pubs))
	for i, p := range pubs {
		out[i] = publicationView{
			ID:        p.ID,
			UserID:    p.UserID,
			FileURL:   h.store.PublicURL(p.FileKey),
			TypeFile:  p.TypeFile,
			CreatedAt: p.CreatedAt,
		}
	}
	return out
}
