package repository

import (
	"ContentTracker/internal/model"
	"context"

	"gorm.io/gorm"
)

// EngagementRepo 互动明细，目前只有演示数据会写入
type EngagementRepo interface {
	CreateEngagements(ctx context.Context, engagements []*model.Engagement) error
	CountEngagements(ctx context.Context, accountID uint64) (int64, error)
}

type engagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &engagementRepoImpl{db: db}
}

func (r *engagementRepoImpl) CreateEngagements(ctx context.Context, engagements []*model.Engagement) error {
	if len(engagements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&engagements).Error
}

func (r *engagementRepoImpl) CountEngagements(ctx context.Context, accountID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Engagement{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}
