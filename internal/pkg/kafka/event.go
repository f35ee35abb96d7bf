package kafka

import "time"

// AccountSyncedEvent 单个账号完成一次同步尝试后发布
type AccountSyncedEvent struct {
	AccountID       uint64    `json:"accountId"`
	Platform        string    `json:"platform"`
	Trigger         string    `json:"trigger"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	SubscriberCount int64     `json:"subscriberCount"`
	VideosUpdated   int       `json:"videosUpdated"`
	TraceID         string    `json:"traceId,omitempty"`
	SyncedAt        time.Time `json:"syncedAt"`
}
