package seed

import (
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	historyDays     = 15
	postsPerAccount = 5
	// 每条帖子附带的互动事件数
	engagementsPerPost = 3
)

type demoAccount struct {
	Platform    model.Platform
	Username    string
	DisplayName string
}

var demoAccounts = []demoAccount{
	{Platform: model.PlatformYouTube, Username: "demo_channel", DisplayName: "Demo Channel"},
	{Platform: model.PlatformInstagram, Username: "demo_ig", DisplayName: "Demo Instagram"},
	{Platform: model.PlatformTikTok, Username: "demo_tiktok", DisplayName: "Demo TikTok"},
}

// Seeder 写入本地演示数据
type Seeder struct {
	accountRepo    repository.AccountRepo
	snapshotRepo   repository.SnapshotRepo
	postRepo       repository.PostRepo
	engagementRepo repository.EngagementRepo
	faker          *gofakeit.Faker
	now            func() time.Time
}

func NewSeeder(
	accountRepo repository.AccountRepo,
	snapshotRepo repository.SnapshotRepo,
	postRepo repository.PostRepo,
	engagementRepo repository.EngagementRepo,
	seed int64,
) *Seeder {
	return &Seeder{
		accountRepo:    accountRepo,
		snapshotRepo:   snapshotRepo,
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
		faker:          gofakeit.New(seed),
		now:            time.Now,
	}
}

// Seed 库中已有账号时跳过，返回是否写入
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		log.InfoContext(ctx, "accounts already exist, skip seeding", "count", count)
		return false, nil
	}

	for _, demo := range demoAccounts {
		if err = s.seedAccount(ctx, demo); err != nil {
			return false, fmt.Errorf("seed %s/%s: %w", demo.Platform, demo.Username, err)
		}
	}
	return true, nil
}

// Reset 清空全部账号，快照、帖子与互动随外键级联删除
func (s *Seeder) Reset(ctx context.Context) (int64, error) {
	return s.accountRepo.DeleteAllAccounts(ctx)
}

func (s *Seeder) seedAccount(ctx context.Context, demo demoAccount) error {
	now := s.now()
	account := &model.Account{
		Platform:    demo.Platform,
		Username:    demo.Username,
		DisplayName: demo.DisplayName,
		AvatarURL:   util.PtrString(s.faker.URL()),
		CreatedAt:   now,
	}
	if err := s.accountRepo.CreateAccount(ctx, account); err != nil {
		return err
	}

	// 粉丝数随机游走，下限 1000
	followers := int64(s.faker.Number(5000, 15000))
	snapshots := make([]*model.FollowerSnapshot, 0, historyDays)
	for i := historyDays - 1; i >= 0; i-- {
		followers += int64(s.faker.Number(-50, 150))
		snapshots = append(snapshots, &model.FollowerSnapshot{
			AccountID:  account.ID,
			Count:      max(followers, 1000),
			RecordedAt: now.AddDate(0, 0, -i),
		})
	}
	if err := s.snapshotRepo.CreateSnapshots(ctx, snapshots); err != nil {
		return err
	}

	posts := make([]*model.Post, 0, postsPerAccount)
	for i := 0; i < postsPerAccount; i++ {
		posts = append(posts, &model.Post{
			AccountID:      account.ID,
			PlatformPostID: fmt.Sprintf("post_%d_%d", account.ID, i),
			Title:          util.PtrString(fmt.Sprintf("Demo Post %d", i+1)),
			PostedAt:       now.AddDate(0, 0, -2*i),
			Likes:          int64(s.faker.Number(100, 5100)),
			Comments:       int64(s.faker.Number(10, 510)),
			Shares:         util.PtrInt64(int64(s.faker.Number(0, 100))),
			Views:          util.PtrInt64(int64(s.faker.Number(1000, 51000))),
			FetchedAt:      now,
		})
	}
	if err := s.postRepo.CreatePosts(ctx, posts); err != nil {
		return err
	}

	engagements := make([]*model.Engagement, 0, len(posts)*engagementsPerPost)
	for _, p := range posts {
		for j := 0; j < engagementsPerPost; j++ {
			engagements = append(engagements, s.fakeEngagement(account.ID, p.ID, now))
		}
	}
	if err := s.engagementRepo.CreateEngagements(ctx, engagements); err != nil {
		return err
	}

	log.InfoContext(ctx, "demo account seeded",
		"account_id", account.ID, "platform", account.Platform,
		"snapshots", len(snapshots), "posts", len(posts), "engagements", len(engagements))
	return nil
}

func (s *Seeder) fakeEngagement(accountID, postID uint64, now time.Time) *model.Engagement {
	types := []string{model.EngagementLike, model.EngagementComment, model.EngagementShare}
	kind := types[s.faker.Number(0, len(types)-1)]

	e := &model.Engagement{
		AccountID:       accountID,
		PostID:          &postID,
		Type:            kind,
		AuthorUsername:  util.PtrString(s.faker.Username()),
		AuthorAvatarURL: util.PtrString(s.faker.URL()),
		OccurredAt:      now.Add(-time.Duration(s.faker.Number(1, 72)) * time.Hour),
	}
	if kind == model.EngagementComment {
		e.Content = util.PtrString(s.faker.Sentence(8))
	}
	return e
}
