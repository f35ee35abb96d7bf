package model

import "time"

// FollowerSnapshot 某一时刻的粉丝/订阅数，只追加不修改
type FollowerSnapshot struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	AccountID  uint64    `gorm:"not null;index:idx_follower_snapshots_account;index:idx_follower_snapshots_account_date,priority:1" json:"accountId"`
	Count      int64     `gorm:"not null" json:"count"`
	RecordedAt time.Time `gorm:"not null;autoCreateTime;index:idx_follower_snapshots_account_date,priority:2" json:"recordedAt"`

	Account *Account `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (FollowerSnapshot) TableName() string {
	return "follower_snapshots"
}
