package service

import (
	"ContentTracker/internal/pkg/youtube"
	"context"
)

// ChannelFetcher 远端频道数据来源，由 youtube.Client 实现
type ChannelFetcher interface {
	HasAPIKey() bool
	GetChannelByHandle(ctx context.Context, handle string) (*youtube.Channel, error)
	GetChannelByID(ctx context.Context, channelID string) (*youtube.Channel, error)
	GetChannelVideos(ctx context.Context, channelID string, maxResults int) ([]*youtube.Video, error)
	GetAllChannelVideos(ctx context.Context, channelID string) ([]*youtube.Video, error)
}

var _ ChannelFetcher = (*youtube.Client)(nil)
