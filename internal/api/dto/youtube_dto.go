package dto

import "time"

type ChannelDTO struct {
	ID                    string `json:"id"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	CustomURL             string `json:"customUrl"`
	ThumbnailURL          string `json:"thumbnailUrl"`
	SubscriberCount       int64  `json:"subscriberCount"`
	ViewCount             int64  `json:"viewCount"`
	VideoCount            int64  `json:"videoCount"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
}

type VideoDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

// FetchChannelReqDTO 一次性拉取频道与最近视频
type FetchChannelReqDTO struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type FetchChannelDTO struct {
	Channel  *ChannelDTO `json:"channel"`
	Videos   []*VideoDTO `json:"videos"`
	SyncedAt time.Time   `json:"syncedAt"`
}
