package service

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"slices"
	"strings"
	"time"
)

type AccountService interface {
	ListAccounts(ctx context.Context, platform string) ([]*model.Account, error)
	// GetAccountDetail 账号、最新粉丝数、最近帖子与汇总
	GetAccountDetail(ctx context.Context, accountID uint64) (*dto.AccountDetailDTO, error)
	// CreateAccount YouTube 账号会先查询频道并写入初始数据
	CreateAccount(ctx context.Context, req *dto.CreateAccountDTO) (*model.Account, error)
	// DeleteAccount 关联数据由外键级联删除
	DeleteAccount(ctx context.Context, accountID uint64) error
}

type accountServiceImpl struct {
	accountRepo repository.AccountRepo
	metricsSvc  *metricsServiceImpl
	yt          ChannelFetcher
	ytCfg       config.YouTubeConfig
	now         func() time.Time
}

func NewAccountService(
	accountRepo repository.AccountRepo,
	snapshotRepo repository.SnapshotRepo,
	postRepo repository.PostRepo,
	yt ChannelFetcher,
	ytCfg config.YouTubeConfig,
) AccountService {
	return &accountServiceImpl{
		accountRepo: accountRepo,
		metricsSvc:  newMetricsService(accountRepo, snapshotRepo, postRepo),
		yt:          yt,
		ytCfg:       ytCfg,
		now:         time.Now,
	}
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, platform string) ([]*model.Account, error) {
	if platform != "" && !slices.Contains(model.Platforms, platform) {
		return nil, ErrParamInvalid
	}
	return s.accountRepo.ListAccounts(ctx, platform)
}

func (s *accountServiceImpl) GetAccountDetail(ctx context.Context, accountID uint64) (*dto.AccountDetailDTO, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	latest, err := s.metricsSvc.latestCount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	posts, err := s.metricsSvc.recentPosts(ctx, accountID, consts.DefaultRecentPostLimit)
	if err != nil {
		return nil, err
	}
	stats, err := s.metricsSvc.sumStats(ctx, accountID)
	if err != nil {
		return nil, err
	}
	// 频道累计播放量比帖子求和更准确
	if account.TotalViews != nil {
		stats.TotalViews = *account.TotalViews
	}

	return &dto.AccountDetailDTO{
		Account:         account,
		LatestFollowers: latest,
		RecentPosts:     posts,
		Stats:           stats,
	}, nil
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req *dto.CreateAccountDTO) (*model.Account, error) {
	req.Platform = strings.TrimSpace(req.Platform)
	req.Username = strings.TrimSpace(req.Username)
	if err := util.ValidateDTO(req); err != nil {
		log.WarnContext(ctx, "create account validation failed", "err", err)
		return nil, ErrParamInvalid
	}

	if req.Platform == model.PlatformYouTube {
		return s.createYouTubeAccount(ctx, req.Username)
	}

	existing, err := s.accountRepo.GetAccountByUsername(ctx, req.Platform, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	account := &model.Account{
		Platform:    req.Platform,
		Username:    req.Username,
		DisplayName: req.Username,
	}
	if err = s.accountRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, err
	}
	return account, nil
}

func (s *accountServiceImpl) createYouTubeAccount(ctx context.Context, handle string) (*model.Account, error) {
	if !s.yt.HasAPIKey() {
		return nil, ErrYouTubeKeyMissing
	}

	channel, err := s.yt.GetChannelByHandle(ctx, handle)
	if err != nil {
		log.ErrorContext(ctx, "youtube channel lookup failed", "handle", handle, "err", err)
		return nil, UnExpectedError
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	username := channel.CustomURL
	if username == "" {
		username = channel.ID
	}
	existing, err := s.accountRepo.GetAccountByUsername(ctx, model.PlatformYouTube, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	limit := s.ytCfg.RecentLimit
	if limit <= 0 {
		limit = consts.DefaultRecentPostLimit
	}
	videos, err := s.yt.GetChannelVideos(ctx, channel.ID, limit)
	if err != nil {
		log.ErrorContext(ctx, "youtube uploads fetch failed", "channel_id", channel.ID, "err", err)
		return nil, UnExpectedError
	}

	now := s.now()
	account := &model.Account{
		Platform:          model.PlatformYouTube,
		Username:          username,
		DisplayName:       channel.Title,
		AvatarURL:         util.PtrString(channel.ThumbnailURL),
		PlatformAccountID: util.PtrString(channel.ID),
	}
	snapshot := &model.FollowerSnapshot{Count: channel.Stats.SubscriberCount, RecordedAt: now}
	posts := make([]*model.Post, 0, len(videos))
	for _, v := range videos {
		posts = append(posts, newPostFromVideo(0, v, now))
	}

	if err = s.accountRepo.CreateAccountWithHistory(ctx, account, snapshot, posts); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	log.InfoContext(ctx, "youtube account created", "account_id", account.ID, "channel_id", channel.ID, "posts", len(posts))
	return account, nil
}

func (s *accountServiceImpl) DeleteAccount(ctx context.Context, accountID uint64) error {
	affected, err := s.accountRepo.DeleteAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
