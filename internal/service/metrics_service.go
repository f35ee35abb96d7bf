package service

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/repository"
	"context"
	"time"
)

type MetricsService interface {
	// GetAccountStats 帖子维度汇总，每次实时计算
	GetAccountStats(ctx context.Context, accountID uint64) (*dto.StatsDTO, error)
	// GetFollowerHistory 最近 days 天的粉丝快照及最新值
	GetFollowerHistory(ctx context.Context, accountID uint64, days int) (*dto.FollowerHistoryDTO, error)
	GetLatestFollowerCount(ctx context.Context, accountID uint64) (*int64, error)
	GetRecentPosts(ctx context.Context, accountID uint64, limit int) ([]*dto.PostDTO, error)
	ListSnapshots(ctx context.Context, accountID uint64) ([]*dto.SnapshotDTO, error)
}

type metricsServiceImpl struct {
	accountRepo  repository.AccountRepo
	snapshotRepo repository.SnapshotRepo
	postRepo     repository.PostRepo
	now          func() time.Time
}

func NewMetricsService(
	accountRepo repository.AccountRepo,
	snapshotRepo repository.SnapshotRepo,
	postRepo repository.PostRepo,
) MetricsService {
	return newMetricsService(accountRepo, snapshotRepo, postRepo)
}

func newMetricsService(
	accountRepo repository.AccountRepo,
	snapshotRepo repository.SnapshotRepo,
	postRepo repository.PostRepo,
) *metricsServiceImpl {
	return &metricsServiceImpl{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		postRepo:     postRepo,
		now:          time.Now,
	}
}

func (s *metricsServiceImpl) ensureAccount(ctx context.Context, accountID uint64) error {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	return nil
}

func (s *metricsServiceImpl) GetAccountStats(ctx context.Context, accountID uint64) (*dto.StatsDTO, error) {
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.sumStats(ctx, accountID)
}

func (s *metricsServiceImpl) sumStats(ctx context.Context, accountID uint64) (*dto.StatsDTO, error) {
	totals, err := s.postRepo.SumPostTotals(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.StatsDTO{
		TotalPosts:    totals.TotalPosts,
		TotalLikes:    totals.TotalLikes,
		TotalComments: totals.TotalComments,
		TotalViews:    totals.TotalViews,
	}, nil
}

func (s *metricsServiceImpl) GetFollowerHistory(ctx context.Context, accountID uint64, days int) (*dto.FollowerHistoryDTO, error) {
	if days <= 0 {
		days = consts.DefaultHistoryDays
	}
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	snapshots, err := s.snapshotRepo.ListSnapshotsSince(ctx, accountID, since)
	if err != nil {
		return nil, err
	}
	items, err := toSnapshotDTOs(snapshots)
	if err != nil {
		return nil, err
	}

	latest, err := s.latestCount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &dto.FollowerHistoryDTO{
		Days:      days,
		Snapshots: items,
		Latest:    latest,
	}, nil
}

func (s *metricsServiceImpl) GetLatestFollowerCount(ctx context.Context, accountID uint64) (*int64, error) {
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.latestCount(ctx, accountID)
}

// latestCount 没有任何快照时返回 nil
func (s *metricsServiceImpl) latestCount(ctx context.Context, accountID uint64) (*int64, error) {
	snapshot, err := s.snapshotRepo.GetLatestSnapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}
	return util.PtrInt64(snapshot.Count), nil
}

func (s *metricsServiceImpl) GetRecentPosts(ctx context.Context, accountID uint64, limit int) ([]*dto.PostDTO, error) {
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.recentPosts(ctx, accountID, limit)
}

func (s *metricsServiceImpl) recentPosts(ctx context.Context, accountID uint64, limit int) ([]*dto.PostDTO, error) {
	limit = util.ClampLimit(limit, consts.DefaultRecentPostLimit, consts.MaxRecentPostLimit)
	posts, err := s.postRepo.ListRecentPosts(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts)
}

func (s *metricsServiceImpl) ListSnapshots(ctx context.Context, accountID uint64) ([]*dto.SnapshotDTO, error) {
	if err := s.ensureAccount(ctx, accountID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshotRepo.ListSnapshots(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toSnapshotDTOs(snapshots)
}
