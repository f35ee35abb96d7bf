package service

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/kafka"
	"ContentTracker/internal/pkg/logger"
	"ContentTracker/internal/pkg/metrics"
	"ContentTracker/internal/pkg/redis"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/pkg/youtube"
	"ContentTracker/internal/repository"
	"context"
	"crypto/subtle"
	"errors"
	log "log/slog"
	"time"
)

const (
	reasonNoPlatformID     = "No platform account ID"
	reasonChannelNotFound  = "Channel not found"
	reasonDeadlineExceeded = "batch deadline exceeded"
)

type SyncService interface {
	// SyncAccount 手动同步单个账号：写入快照、刷新资料、upsert 最近视频
	SyncAccount(ctx context.Context, accountID uint64) (*dto.SyncResultDTO, error)
	// BatchSync 校验定时任务密钥后同步全部 YouTube 账号
	BatchSync(ctx context.Context, token string) (*dto.BatchSyncDTO, error)
	// SyncAll 顺序同步全部 YouTube 账号，单个失败不中断
	SyncAll(ctx context.Context) (*dto.BatchSyncDTO, error)
	// LastBatchReport 最近一次批量同步结果
	LastBatchReport(ctx context.Context, token string) (*dto.BatchSyncDTO, error)
}

type syncServiceImpl struct {
	accountRepo  repository.AccountRepo
	snapshotRepo repository.SnapshotRepo
	postRepo     repository.PostRepo
	yt           ChannelFetcher
	ytCfg        config.YouTubeConfig
	cronCfg      config.CronConfig
	publisher    kafka.SyncEventPublisher
	now          func() time.Time
}

func NewSyncService(
	accountRepo repository.AccountRepo,
	snapshotRepo repository.SnapshotRepo,
	postRepo repository.PostRepo,
	yt ChannelFetcher,
	ytCfg config.YouTubeConfig,
	cronCfg config.CronConfig,
	publisher kafka.SyncEventPublisher,
) SyncService {
	if publisher == nil {
		publisher = kafka.NoopPublisher{}
	}
	return &syncServiceImpl{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		postRepo:     postRepo,
		yt:           yt,
		ytCfg:        ytCfg,
		cronCfg:      cronCfg,
		publisher:    publisher,
		now:          time.Now,
	}
}

func (s *syncServiceImpl) SyncAccount(ctx context.Context, accountID uint64) (*dto.SyncResultDTO, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if !model.IsSyncable(account.Platform) {
		return nil, ErrPlatformNotSupported
	}
	if !s.yt.HasAPIKey() {
		return nil, ErrYouTubeKeyMissing
	}
	if account.PlatformAccountID == nil || *account.PlatformAccountID == "" {
		return nil, ErrPlatformIDMissing
	}

	limit := s.ytCfg.RecentLimit
	if limit <= 0 {
		limit = consts.DefaultRecentPostLimit
	}
	subscribers, updated, err := s.syncChannel(ctx, account, func(channelID string) ([]*youtube.Video, error) {
		return s.yt.GetChannelVideos(ctx, channelID, limit)
	})

	item := &dto.BatchItemDTO{AccountID: account.ID, Username: account.Username}
	switch {
	case errors.Is(err, ErrChannelNotFound):
		s.record(ctx, account, consts.SyncTriggerManual, failed(item, reasonChannelNotFound))
		return nil, ErrChannelNotFound
	case err != nil:
		log.ErrorContext(ctx, "sync account failed", "account_id", account.ID, "err", err)
		s.record(ctx, account, consts.SyncTriggerManual, failed(item, err.Error()))
		return nil, ErrSyncFailed
	}

	s.record(ctx, account, consts.SyncTriggerManual, succeeded(item, subscribers, updated))
	return &dto.SyncResultDTO{
		Success:         true,
		SubscriberCount: subscribers,
		VideosUpdated:   updated,
	}, nil
}

func (s *syncServiceImpl) BatchSync(ctx context.Context, token string) (*dto.BatchSyncDTO, error) {
	if err := s.authorize(token); err != nil {
		return nil, err
	}
	return s.SyncAll(ctx)
}

func (s *syncServiceImpl) LastBatchReport(ctx context.Context, token string) (*dto.BatchSyncDTO, error) {
	if err := s.authorize(token); err != nil {
		return nil, err
	}
	var report dto.BatchSyncDTO
	found, err := redis.GetJSON(ctx, consts.SyncBatchLastReportKey, &report)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrBatchReportNotFound
	}
	return &report, nil
}

// authorize 未配置密钥时拒绝一切调用
func (s *syncServiceImpl) authorize(token string) error {
	if s.cronCfg.Secret == "" {
		return ErrCronSecretMissing
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cronCfg.Secret)) != 1 {
		return UnauthorizedError
	}
	return nil
}

func (s *syncServiceImpl) SyncAll(ctx context.Context) (*dto.BatchSyncDTO, error) {
	// 缺少 key 时不发请求，也不覆盖上一份报告
	if !s.yt.HasAPIKey() {
		return nil, ErrYouTubeKeyMissing
	}

	start := s.now()
	defer func() {
		metrics.SyncBatchDuration.Observe(time.Since(start).Seconds())
	}()

	// 存储报告不受批次截止时间影响
	storeCtx := context.WithoutCancel(ctx)

	if s.cronCfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cronCfg.BatchTimeout)
		defer cancel()
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, model.PlatformYouTube)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.BatchItemDTO, 0, len(accounts))
	for _, account := range accounts {
		item := s.syncOne(ctx, account)
		s.record(storeCtx, account, consts.SyncTriggerBatch, item)
		items = append(items, item)
	}

	report := &dto.BatchSyncDTO{
		Success:  true,
		SyncedAt: s.now(),
		Accounts: items,
	}
	if err = redis.SetJSON(storeCtx, consts.SyncBatchLastReportKey, report, 0); err != nil {
		log.WarnContext(storeCtx, "store batch report failed", "err", err)
	}

	log.InfoContext(storeCtx, "batch sync finished", "accounts", len(items), "elapsed", time.Since(start))
	return report, nil
}

// syncOne 把单个账号的同步折叠为 success / error / skipped
func (s *syncServiceImpl) syncOne(ctx context.Context, account *model.Account) *dto.BatchItemDTO {
	item := &dto.BatchItemDTO{AccountID: account.ID, Username: account.Username}

	if account.PlatformAccountID == nil || *account.PlatformAccountID == "" {
		item.Status = consts.SyncStatusSkipped
		item.Reason = reasonNoPlatformID
		return item
	}
	if ctx.Err() != nil {
		item.Status = consts.SyncStatusSkipped
		item.Reason = reasonDeadlineExceeded
		return item
	}

	subscribers, updated, err := s.syncChannel(ctx, account, func(channelID string) ([]*youtube.Video, error) {
		return s.yt.GetAllChannelVideos(ctx, channelID)
	})
	switch {
	case errors.Is(err, ErrChannelNotFound):
		return failed(item, reasonChannelNotFound)
	case err != nil:
		log.WarnContext(ctx, "batch sync account failed", "account_id", account.ID, "err", err)
		return failed(item, err.Error())
	}
	return succeeded(item, subscribers, updated)
}

// syncChannel 写入新快照、刷新账号资料并 upsert 视频
// 多步写入之间不加事务与锁，并发同步时以最后一次写入为准
func (s *syncServiceImpl) syncChannel(
	ctx context.Context,
	account *model.Account,
	fetchVideos func(channelID string) ([]*youtube.Video, error),
) (int64, int, error) {
	channel, err := s.yt.GetChannelByID(ctx, *account.PlatformAccountID)
	if err != nil {
		return 0, 0, err
	}
	if channel == nil {
		return 0, 0, ErrChannelNotFound
	}

	now := s.now()
	snapshot := &model.FollowerSnapshot{
		AccountID:  account.ID,
		Count:      channel.Stats.SubscriberCount,
		RecordedAt: now,
	}
	if err = s.snapshotRepo.CreateSnapshot(ctx, snapshot); err != nil {
		return 0, 0, err
	}

	err = s.accountRepo.UpdateAccountProfile(ctx, account.ID, map[string]any{
		"display_name": channel.Title,
		"avatar_url":   util.PtrString(channel.ThumbnailURL),
		"total_views":  channel.Stats.ViewCount,
	})
	if err != nil {
		return 0, 0, err
	}

	videos, err := fetchVideos(channel.ID)
	if err != nil {
		return 0, 0, err
	}

	updated := 0
	for _, v := range videos {
		existing, err := s.postRepo.GetPostByPlatformPostID(ctx, account.ID, v.ID)
		if err != nil {
			return 0, 0, err
		}
		if existing != nil {
			err = s.postRepo.UpdatePostCounters(ctx, existing.ID,
				v.Stats.LikeCount, v.Stats.CommentCount, util.PtrInt64(v.Stats.ViewCount), now)
		} else {
			err = s.postRepo.CreatePost(ctx, newPostFromVideo(account.ID, v, now))
		}
		if err != nil {
			return 0, 0, err
		}
		updated++
	}

	return channel.Stats.SubscriberCount, updated, nil
}

// record 更新计数器并发布同步事件
func (s *syncServiceImpl) record(ctx context.Context, account *model.Account, trigger string, item *dto.BatchItemDTO) {
	metrics.SyncAccounts.WithLabelValues(trigger, item.Status).Inc()

	event := &kafka.AccountSyncedEvent{
		AccountID: account.ID,
		Platform:  account.Platform,
		Trigger:   trigger,
		Status:    item.Status,
		Reason:    item.Reason,
		TraceID:   logger.TraceID(ctx),
		SyncedAt:  s.now(),
	}
	if item.SubscriberCount != nil {
		event.SubscriberCount = *item.SubscriberCount
	}
	if item.VideosUpdated != nil {
		event.VideosUpdated = *item.VideosUpdated
	}
	s.publisher.PublishAccountSynced(ctx, event)
}

func failed(item *dto.BatchItemDTO, reason string) *dto.BatchItemDTO {
	item.Status = consts.SyncStatusError
	item.Reason = reason
	return item
}

func succeeded(item *dto.BatchItemDTO, subscribers int64, updated int) *dto.BatchItemDTO {
	item.Status = consts.SyncStatusSuccess
	item.SubscriberCount = util.PtrInt64(subscribers)
	item.VideosUpdated = &updated
	return item
}
