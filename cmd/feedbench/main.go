package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/socialgraph/config"
	"github.com/d60-Lab/socialgraph/internal/model"
	"github.com/d60-Lab/socialgraph/internal/repository"
	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/pkg/database"
	"github.com/d60-Lab/socialgraph/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// feedbench: 读时扇出 feed 的延迟基准。
// 环境变量: USERS 关注账号数, PUBS 每账号发布数, N 请求次数, FANOUT 并发度
func main() {
	cfg := must(config.Load())
	_ = logger.Init("debug")
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	users := envInt("USERS", 200)
	pubs := envInt("PUBS", 10)
	n := envInt("N", 500)
	fanout := envInt("FANOUT", cfg.Feed.Fanout)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	pubRepo := repository.NewPublicationRepository(db)
	feeds := service.NewFeedService(userRepo, followRepo, pubRepo, cfg.Feed.PerSource, fanout)

	// viewer 关注 USERS 个账号，每个账号 PUBS 条发布
	viewer := &model.User{ID: uuid.New().String(), Name: "viewer", Username: "viewer", Email: "viewer@example.com", Password: "p"}
	_ = db.Create(viewer).Error
	fmt.Printf("seeding %d users x %d publications...\n", users, pubs)
	for i := 0; i < users; i++ {
		id := uuid.New().String()
		u := &model.User{ID: id, Name: "u" + id[:8], Username: "u" + id[:8], Email: id[:8] + "@example.com", Password: "p"}
		_ = db.Create(u).Error
		_, _ = followRepo.Create(ctx, viewer.ID, id)
		for j := 0; j < pubs; j++ {
			_, _ = pubRepo.Create(ctx, id, fmt.Sprintf("publication/%s-%d.jpg", id[:8], j), "image")
		}
	}

	fmt.Printf("running %d feed requests (fanout=%d)...\n", n, fanout)
	lat := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		res, err := feeds.Feed(ctx, viewer.ID)
		if err != nil {
			panic(err)
		}
		lat = append(lat, time.Since(start))
		if i == 0 {
			fmt.Printf("feed size: %d\n", len(res))
		}
	}

	sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
	pct := func(p float64) time.Duration { return lat[int(float64(len(lat)-1)*p)] }
	fmt.Printf("p50=%v p90=%v p99=%v max=%v\n", pct(0.5), pct(0.9), pct(0.99), lat[len(lat)-1])
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
