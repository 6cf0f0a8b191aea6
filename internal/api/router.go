package api

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/socialgraph/config"
	_ "github.com/d60-Lab/socialgraph/docs"
	"github.com/d60-Lab/socialgraph/internal/api/handler"
	"github.com/d60-Lab/socialgraph/internal/api/middleware"
	"github.com/d60-Lab/socialgraph/internal/service"
)

// NewRouter 组装路由与中间件链
func NewRouter(cfg *config.Config, h *handler.Handler, accounts service.AccountService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true, Timeout: 3 * time.Second}))
	}
	r.Use(otelgin.Middleware(cfg.Otel.ServiceName))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", h.Register)
		v1.POST("/auth/login", h.Login)

		v1.GET("/users", h.GetUser)
		v1.GET("/users/search", h.SearchUsers)
		v1.GET("/relations/:username/followers", h.Followers)
		v1.GET("/relations/:username/followed", h.Followed)
		v1.GET("/publications", h.GetPublications)
		v1.GET("/publications/:id/comments", h.GetComments)
		v1.GET("/publications/:id/likes/count", h.CountLikes)

		auth := v1.Group("", middleware.RequireAuth(accounts))
		{
			auth.PATCH("/users/me", h.UpdateUser)
			auth.POST("/users/me/avatar", h.UploadAvatar)
			auth.DELETE("/users/me/avatar", h.DeleteAvatar)

			auth.POST("/relations/follow", h.Follow)
			auth.POST("/relations/unfollow", h.Unfollow)
			auth.GET("/relations/:username/is-following", h.IsFollowing)
			auth.GET("/suggestions", h.Suggestions)

			auth.GET("/feed", h.GetFeed)
			auth.POST("/publications", h.Publish)
			auth.POST("/publications/:id/comments", h.AddComment)
			auth.PUT("/publications/:id/likes", h.AddLike)
			auth.DELETE("/publications/:id/likes", h.RemoveLike)
			auth.GET("/publications/:id/likes/me", h.IsLiked)
		}
	}
	return r
}
