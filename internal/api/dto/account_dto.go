package dto

import (
	"ContentTracker/internal/model"
)

// CreateAccountDTO 登记账号请求
type CreateAccountDTO struct {
	Platform string `json:"platform" validate:"required,platform"`
	Username string `json:"username" validate:"required,max=255"`
}

// AccountDetailDTO 账号详情页聚合数据
type AccountDetailDTO struct {
	Account         *model.Account `json:"account"`
	LatestFollowers *int64         `json:"latestFollowers"`
	RecentPosts     []*PostDTO     `json:"recentPosts"`
	Stats           *StatsDTO      `json:"stats"`
}
