package repository

import (
	"ContentTracker/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AccountRepo interface {
	ListAccounts(ctx context.Context, platform string) ([]*model.Account, error)
	GetAccountByID(ctx context.Context, id uint64) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, platform string, username string) (*model.Account, error)
	CountAccounts(ctx context.Context) (int64, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	CreateAccountWithHistory(ctx context.Context, account *model.Account, snapshot *model.FollowerSnapshot, posts []*model.Post) error
	UpdateAccountProfile(ctx context.Context, id uint64, updates map[string]any) error
	DeleteAccount(ctx context.Context, id uint64) (int64, error)
	DeleteAllAccounts(ctx context.Context) (int64, error)
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepo {
	return &accountRepoImpl{db: db}
}

// ListAccounts 按登记时间升序，platform 为空时返回全部
func (r *accountRepoImpl) ListAccounts(ctx context.Context, platform string) ([]*model.Account, error) {
	accounts := make([]*model.Account, 0)
	query := r.db.WithContext(ctx)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if err := query.Order("created_at ASC").Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepoImpl) GetAccountByID(ctx context.Context, id uint64) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepoImpl) GetAccountByUsername(ctx context.Context, platform string, username string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("platform = ? AND username = ?", platform, username).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepoImpl) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).Count(&count).Error
	return count, err
}

// CreateAccount (platform, username) 冲突时返回 ErrDuplicateKey
func (r *accountRepoImpl) CreateAccount(ctx context.Context, account *model.Account) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(account).Error)
}

// CreateAccountWithHistory 在一个事务中写入账号、首条粉丝快照与初始帖子
func (r *accountRepoImpl) CreateAccountWithHistory(
	ctx context.Context,
	account *model.Account,
	snapshot *model.FollowerSnapshot,
	posts []*model.Post,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		if snapshot != nil {
			snapshot.AccountID = account.ID
			if err := tx.Create(snapshot).Error; err != nil {
				return err
			}
		}
		if len(posts) > 0 {
			for _, p := range posts {
				p.AccountID = account.ID
			}
			if err := tx.Create(&posts).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateDuplicate(err)
}

// UpdateAccountProfile 只更新 updates 中出现的列
func (r *accountRepoImpl) UpdateAccountProfile(ctx context.Context, id uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteAccount 依赖外键级联删除快照、帖子与互动
func (r *accountRepoImpl) DeleteAccount(ctx context.Context, id uint64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Account{}, id)
	return result.RowsAffected, result.Error
}

// DeleteAllAccounts 清空全部账号，供演示数据重置使用
func (r *accountRepoImpl) DeleteAllAccounts(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Account{})
	return result.RowsAffected, result.Error
}
