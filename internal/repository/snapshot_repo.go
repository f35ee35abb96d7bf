package repository

import (
	"ContentTracker/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// SnapshotRepo 粉丝快照只追加，不提供更新接口
type SnapshotRepo interface {
	CreateSnapshot(ctx context.Context, snapshot *model.FollowerSnapshot) error
	CreateSnapshots(ctx context.Context, snapshots []*model.FollowerSnapshot) error
	ListSnapshots(ctx context.Context, accountID uint64) ([]*model.FollowerSnapshot, error)
	ListSnapshotsSince(ctx context.Context, accountID uint64, since time.Time) ([]*model.FollowerSnapshot, error)
	GetLatestSnapshot(ctx context.Context, accountID uint64) (*model.FollowerSnapshot, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

func (r *snapshotRepoImpl) CreateSnapshot(ctx context.Context, snapshot *model.FollowerSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepoImpl) CreateSnapshots(ctx context.Context, snapshots []*model.FollowerSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&snapshots).Error
}

func (r *snapshotRepoImpl) ListSnapshots(ctx context.Context, accountID uint64) ([]*model.FollowerSnapshot, error) {
	snapshots := make([]*model.FollowerSnapshot, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("recorded_at ASC").
		Order("id ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ListSnapshotsSince 返回 recorded_at >= since 的快照，按时间升序
func (r *snapshotRepoImpl) ListSnapshotsSince(ctx context.Context, accountID uint64, since time.Time) ([]*model.FollowerSnapshot, error) {
	snapshots := make([]*model.FollowerSnapshot, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND recorded_at >= ?", accountID, since).
		Order("recorded_at ASC").
		Order("id ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *snapshotRepoImpl) GetLatestSnapshot(ctx context.Context, accountID uint64) (*model.FollowerSnapshot, error) {
	var snapshot model.FollowerSnapshot
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("recorded_at DESC").
		Order("id DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
