package dto

import "time"

// SyncResultDTO 单账号同步结果
type SyncResultDTO struct {
	Success         bool  `json:"success"`
	SubscriberCount int64 `json:"subscriberCount"`
	VideosUpdated   int   `json:"videosUpdated"`
}

// BatchItemDTO 批量同步中单个账号的结果，Status 取 success / error / skipped
type BatchItemDTO struct {
	AccountID       uint64 `json:"accountId"`
	Username        string `json:"username"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	SubscriberCount *int64 `json:"subscriberCount,omitempty"`
	VideosUpdated   *int   `json:"videosUpdated,omitempty"`
}

type BatchSyncDTO struct {
	Success  bool            `json:"success"`
	SyncedAt time.Time       `json:"syncedAt"`
	Accounts []*BatchItemDTO `json:"accounts"`
}
