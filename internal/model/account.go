package model

import "time"

type Account struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Platform          string    `gorm:"type:varchar(50);not null;index:idx_accounts_platform;uniqueIndex:idx_accounts_platform_username,priority:1" json:"platform"`
	Username          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_platform_username,priority:2" json:"username"`
	DisplayName       string    `gorm:"type:varchar(255);not null" json:"displayName"`
	AvatarURL         *string   `gorm:"type:text" json:"avatarUrl"`
	PlatformAccountID *string   `gorm:"type:varchar(255)" json:"platformAccountId"` // 例如 YouTube channel ID
	TotalViews        *int64    `json:"totalViews"`                                 // 频道累计播放量，优先于帖子求和
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
}

func (Account) TableName() string {
	return "accounts"
}
