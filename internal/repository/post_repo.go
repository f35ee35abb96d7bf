package repository

import (
	"ContentTracker/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostTotals 帖子计数汇总，views 为空按 0 计
type PostTotals struct {
	TotalPosts    int64
	TotalLikes    int64
	TotalComments int64
	TotalViews    int64
}

type PostRepo interface {
	GetPostByPlatformPostID(ctx context.Context, accountID uint64, platformPostID string) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) error
	CreatePosts(ctx context.Context, posts []*model.Post) error
	UpdatePostCounters(ctx context.Context, id uint64, likes int64, comments int64, views *int64, fetchedAt time.Time) error
	ListPosts(ctx context.Context, accountID uint64) ([]*model.Post, error)
	ListRecentPosts(ctx context.Context, accountID uint64, limit int) ([]*model.Post, error)
	SumPostTotals(ctx context.Context, accountID uint64) (*PostTotals, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

// GetPostByPlatformPostID upsert 查找键为 (account_id, platform_post_id)
func (r *postRepoImpl) GetPostByPlatformPostID(ctx context.Context, accountID uint64, platformPostID string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND platform_post_id = ?", accountID, platformPostID).
		Order("id ASC").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepoImpl) CreatePosts(ctx context.Context, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&posts).Error
}

// UpdatePostCounters 覆盖写入计数，posted_at 保持不变
func (r *postRepoImpl) UpdatePostCounters(ctx context.Context, id uint64, likes int64, comments int64, views *int64, fetchedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"likes":      likes,
			"comments":   comments,
			"views":      views,
			"fetched_at": fetchedAt,
		}).Error
}

func (r *postRepoImpl) ListPosts(ctx context.Context, accountID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("posted_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepoImpl) ListRecentPosts(ctx context.Context, accountID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("posted_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SumPostTotals 每次实时聚合，不做缓存
func (r *postRepoImpl) SumPostTotals(ctx context.Context, accountID uint64) (*PostTotals, error) {
	var totals PostTotals
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("COUNT(*) AS total_posts, " +
			"COALESCE(SUM(likes), 0) AS total_likes, " +
			"COALESCE(SUM(comments), 0) AS total_comments, " +
			"COALESCE(SUM(views), 0) AS total_views").
		Where("account_id = ?", accountID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
