package job

import (
	"ContentTracker/internal/pkg/logger"
	"ContentTracker/internal/service"
	"context"
	log "log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

// YouTubeSyncJob 定时批量同步全部 YouTube 账号
type YouTubeSyncJob struct {
	syncSvc service.SyncService
	running atomic.Bool
}

func NewYouTubeSyncJob(syncSvc service.SyncService) *YouTubeSyncJob {
	return &YouTubeSyncJob{
		syncSvc: syncSvc,
	}
}

func (s *YouTubeSyncJob) Run() {
	// 上一轮未结束时跳过本轮
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("youtube sync job still running, skip this tick")
		return
	}
	defer s.running.Store(false)

	traceID := "job-youtube-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	log.InfoContext(ctx, "youtube sync job start")
	report, err := s.syncSvc.SyncAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "youtube sync job failed", "err", err)
		return
	}

	summary := map[string]int{}
	for _, item := range report.Accounts {
		summary[item.Status]++
	}
	log.InfoContext(ctx, "youtube sync job done", "accounts", len(report.Accounts), "summary", summary)
}
