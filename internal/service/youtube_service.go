package service

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/redis"
	"ContentTracker/internal/pkg/youtube"
	"context"
	log "log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type YouTubeService interface {
	// LookupChannel handle 与 channelID 二选一，handle 优先
	LookupChannel(ctx context.Context, handle string, channelID string) (*dto.ChannelDTO, error)
	// FetchChannel 并发拉取频道信息与最近 10 条视频，不落库
	FetchChannel(ctx context.Context, channelID string) (*dto.FetchChannelDTO, error)
}

type youTubeServiceImpl struct {
	yt    ChannelFetcher
	ytCfg config.YouTubeConfig
	now   func() time.Time
}

func NewYouTubeService(yt ChannelFetcher, ytCfg config.YouTubeConfig) YouTubeService {
	return &youTubeServiceImpl{
		yt:    yt,
		ytCfg: ytCfg,
		now:   time.Now,
	}
}

func (s *youTubeServiceImpl) LookupChannel(ctx context.Context, handle string, channelID string) (*dto.ChannelDTO, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	channelID = strings.TrimSpace(channelID)
	if !s.yt.HasAPIKey() {
		return nil, ErrYouTubeKeyMissing
	}
	if handle == "" && channelID == "" {
		return nil, ErrParamInvalid
	}

	if handle != "" {
		return s.lookupByHandle(ctx, handle)
	}

	channel, err := s.yt.GetChannelByID(ctx, channelID)
	if err != nil {
		log.ErrorContext(ctx, "youtube channel lookup failed", "channel_id", channelID, "err", err)
		return nil, UnExpectedError
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}
	return toChannelDTO(channel)
}

// lookupByHandle 命中缓存时不消耗 API 配额，未找到的结果不缓存
func (s *youTubeServiceImpl) lookupByHandle(ctx context.Context, handle string) (*dto.ChannelDTO, error) {
	key := consts.YouTubeChannelHandleKey + strings.ToLower(handle)

	var cached dto.ChannelDTO
	if found, err := redis.GetJSON(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	channel, err := s.yt.GetChannelByHandle(ctx, handle)
	if err != nil {
		log.ErrorContext(ctx, "youtube channel lookup failed", "handle", handle, "err", err)
		return nil, UnExpectedError
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	res, err := toChannelDTO(channel)
	if err != nil {
		return nil, err
	}
	if s.ytCfg.LookupCacheTTL > 0 {
		if err = redis.SetJSON(ctx, key, res, s.ytCfg.LookupCacheTTL); err != nil {
			log.WarnContext(ctx, "cache channel lookup failed", "err", err)
		}
	}
	return res, nil
}

func (s *youTubeServiceImpl) FetchChannel(ctx context.Context, channelID string) (*dto.FetchChannelDTO, error) {
	if !s.yt.HasAPIKey() {
		return nil, ErrYouTubeKeyMissing
	}
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, ErrParamInvalid
	}

	var (
		channel *youtube.Channel
		videos  []*youtube.Video
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		channel, err = s.yt.GetChannelByID(gCtx, channelID)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = s.yt.GetChannelVideos(gCtx, channelID, consts.DefaultRecentPostLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "youtube channel fetch failed", "channel_id", channelID, "err", err)
		return nil, UnExpectedError
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	channelDTO, err := toChannelDTO(channel)
	if err != nil {
		return nil, err
	}
	videoDTOs, err := toVideoDTOs(videos)
	if err != nil {
		return nil, err
	}
	return &dto.FetchChannelDTO{
		Channel:  channelDTO,
		Videos:   videoDTOs,
		SyncedAt: s.now(),
	}, nil
}
