package main

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/database"
	"ContentTracker/internal/pkg/logger"
	"ContentTracker/internal/pkg/redis"
	"ContentTracker/internal/repository"
	"ContentTracker/internal/seed"
	"context"
	"flag"
	log "log/slog"
	"os"
	"time"
)

func main() {
	reset := flag.Bool("reset", false, "清空全部账号数据后再写入演示数据")
	seedValue := flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.Logstash)

	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		os.Exit(1)
	}

	if *seedValue == 0 {
		*seedValue = time.Now().UnixNano()
	}
	seeder := seed.NewSeeder(
		repository.NewAccountRepo(db),
		repository.NewSnapshotRepo(db),
		repository.NewPostRepo(db),
		repository.NewEngagementRepo(db),
		*seedValue,
	)

	ctx := logger.WithTraceID(context.Background(), "seed")
	if *reset {
		deleted, err := seeder.Reset(ctx)
		if err != nil {
			log.ErrorContext(ctx, "reset failed", "err", err)
			os.Exit(1)
		}
		log.InfoContext(ctx, "all accounts deleted", "count", deleted)
		clearBatchReport(ctx, cfg.Redis)
	}

	seeded, err := seeder.Seed(ctx)
	if err != nil {
		log.ErrorContext(ctx, "seed failed", "err", err)
		os.Exit(1)
	}
	log.InfoContext(ctx, "seed finished", "seeded", seeded)
}

// clearBatchReport Redis 不可用时只告警，不影响重置
func clearBatchReport(ctx context.Context, cfg config.RedisConfig) {
	if err := redis.InitRedis(cfg); err != nil {
		log.WarnContext(ctx, "redis unavailable, batch report not cleared", "err", err)
		return
	}
	defer redis.Close()

	if err := redis.DeleteKey(ctx, consts.SyncBatchLastReportKey); err != nil {
		log.WarnContext(ctx, "clear batch report failed", "err", err)
	}
}
