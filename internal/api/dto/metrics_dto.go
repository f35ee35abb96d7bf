package dto

import "time"

// StatsDTO 帖子维度的汇总
type StatsDTO struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	TotalViews    int64 `json:"totalViews"`
}

type SnapshotDTO struct {
	Count      int64     `json:"count"`
	RecordedAt time.Time `json:"recordedAt"`
}

// FollowerHistoryDTO 粉丝趋势，Latest 为全量最新一条快照
type FollowerHistoryDTO struct {
	Days      int            `json:"days"`
	Snapshots []*SnapshotDTO `json:"snapshots"`
	Latest    *int64         `json:"latest"`
}

type PostDTO struct {
	ID             uint64    `json:"id"`
	PlatformPostID string    `json:"platformPostId"`
	Title          *string   `json:"title"`
	ThumbnailURL   *string   `json:"thumbnailUrl"`
	PostedAt       time.Time `json:"postedAt"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         *int64    `json:"shares"`
	Views          *int64    `json:"views"`
	FetchedAt      time.Time `json:"fetchedAt"`
}
