package model

import (
	"time"
)

type Post struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	AccountID      uint64    `gorm:"not null;index:idx_posts_account;index:idx_posts_account_posted,priority:1" json:"accountId"`
	PlatformPostID string    `gorm:"type:varchar(255);not null;index:idx_posts_platform_post_id" json:"platformPostId"`
	Title          *string   `gorm:"type:text" json:"title"`
	ThumbnailURL   *string   `gorm:"type:text" json:"thumbnailUrl"`
	PostedAt       time.Time `gorm:"not null;index:idx_posts_account_posted,priority:2" json:"postedAt"`
	Likes          int64     `gorm:"not null;default:0" json:"likes"`
	Comments       int64     `gorm:"not null;default:0" json:"comments"`
	Shares         *int64    `json:"shares"`
	Views          *int64    `json:"views"`
	FetchedAt      time.Time `gorm:"not null;autoCreateTime" json:"fetchedAt"`

	// 关联关系
	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
