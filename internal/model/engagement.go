package model

import "time"

const (
	EngagementLike    = "like"
	EngagementComment = "comment"
	EngagementShare   = "share"
	EngagementView    = "view"
)

// Engagement 单条互动事件，同步流程暂不写入
type Engagement struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	AccountID       uint64    `gorm:"not null;index:idx_engagements_account" json:"accountId"`
	PostID          *uint64   `gorm:"index:idx_engagements_post" json:"postId"`
	Type            string    `gorm:"type:varchar(50);not null" json:"type"`
	AuthorUsername  *string   `gorm:"type:varchar(255)" json:"authorUsername"`
	AuthorAvatarURL *string   `gorm:"type:text" json:"authorAvatarUrl"`
	Content         *string   `gorm:"type:text" json:"content"`
	OccurredAt      time.Time `gorm:"not null;autoCreateTime" json:"occurredAt"`

	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Post    *Post    `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Engagement) TableName() string {
	return "engagements"
}
