package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/socialgraph/config"
	"github.com/d60-Lab/socialgraph/internal/api"
	"github.com/d60-Lab/socialgraph/internal/api/handler"
	"github.com/d60-Lab/socialgraph/internal/cache"
	"github.com/d60-Lab/socialgraph/internal/repository"
	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/internal/storage"
	"github.com/d60-Lab/socialgraph/pkg/database"
	"github.com/d60-Lab/socialgraph/pkg/logger"
	"github.com/d60-Lab/socialgraph/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Otel.Endpoint, cfg.Otel.ServiceName)
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, follower cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	var store storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("object storage init failed", zap.Error(err))
		}
		defer gcsStore.Close()
		store = gcsStore
	} else {
		logger.Warn("storage bucket not configured, using in-memory object store")
		store = storage.NewMemoryStore()
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	pubRepo := repository.NewPublicationRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	followerCache := cache.NewFollowerCache(redisClient, cfg.Redis.TTL)
	invalidator := cache.NewInvalidator(followerCache, 0)
	stopInvalidator := invalidator.Start(2)

	accounts := service.NewAccountService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	relations := service.NewRelationshipService(userRepo, followRepo, followerCache, invalidator, cfg.Feed.CandidatePool)
	feeds := service.NewFeedService(userRepo, followRepo, pubRepo, cfg.Feed.PerSource, cfg.Feed.Fanout)
	engagement := service.NewEngagementService(pubRepo, likeRepo, commentRepo)
	media := service.NewMediaService(userRepo, pubRepo, store)

	h := handler.New(accounts, relations, feeds, engagement, media, store)
	router := api.NewRouter(cfg, h, accounts)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	_ = stopInvalidator(shutdownCtx)
}
