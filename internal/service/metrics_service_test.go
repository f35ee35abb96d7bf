package service

import (
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestMetricsService(db *gorm.DB) MetricsService {
	return NewMetricsService(
		repository.NewAccountRepo(db),
		repository.NewSnapshotRepo(db),
		repository.NewPostRepo(db),
	)
}

func TestGetAccountStatsSums(t *testing.T) {
	db := newTestDB(t)
	acc := insertAccount(t, db, model.PlatformYouTube, "@a", "UC1")
	now := time.Now()
	require.NoError(t, db.Create(&[]*model.Post{
		{AccountID: acc.ID, PlatformPostID: "1", PostedAt: now, Likes: 10, Comments: 2, Views: util.PtrInt64(7)},
		{AccountID: acc.ID, PlatformPostID: "2", PostedAt: now, Likes: 20, Comments: 0},
		{AccountID: acc.ID, PlatformPostID: "3", PostedAt: now, Likes: 5, Comments: 1, Views: util.PtrInt64(3)},
	}).Error)

	stats, err := newTestMetricsService(db).GetAccountStats(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalPosts)
	assert.Equal(t, int64(35), stats.TotalLikes)
	assert.Equal(t, int64(3), stats.TotalComments)
	assert.Equal(t, int64(10), stats.TotalViews)

	_, err = newTestMetricsService(db).GetAccountStats(context.Background(), acc.ID+1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetFollowerHistoryWindow(t *testing.T) {
	db := newTestDB(t)
	acc := insertAccount(t, db, model.PlatformYouTube, "@a", "UC1")
	now := time.Now()
	require.NoError(t, db.Create(&[]*model.FollowerSnapshot{
		{AccountID: acc.ID, Count: 100, RecordedAt: now.AddDate(0, 0, -30)},
		{AccountID: acc.ID, Count: 200, RecordedAt: now.AddDate(0, 0, -10)},
		{AccountID: acc.ID, Count: 300, RecordedAt: now.AddDate(0, 0, -1)},
	}).Error)

	svc := newTestMetricsService(db)
	history, err := svc.GetFollowerHistory(context.Background(), acc.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, history.Days)
	require.Len(t, history.Snapshots, 1)
	assert.Equal(t, int64(300), history.Snapshots[0].Count)
	require.NotNil(t, history.Latest)
	assert.Equal(t, int64(300), *history.Latest)

	history, err = svc.GetFollowerHistory(context.Background(), acc.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, history.Days)
	assert.Len(t, history.Snapshots, 2)

	all, err := svc.ListSnapshots(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(100), all[0].Count)
}

func TestGetLatestFollowerCountEmpty(t *testing.T) {
	db := newTestDB(t)
	acc := insertAccount(t, db, model.PlatformTwitter, "tw", "")

	latest, err := newTestMetricsService(db).GetLatestFollowerCount(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestGetRecentPostsLimit(t *testing.T) {
	db := newTestDB(t)
	acc := insertAccount(t, db, model.PlatformYouTube, "@a", "UC1")
	base := time.Now().Add(-200 * time.Hour)
	posts := make([]*model.Post, 0, 120)
	for i := 0; i < 120; i++ {
		posts = append(posts, &model.Post{
			AccountID:      acc.ID,
			PlatformPostID: "p" + string(rune('A'+i%26)) + string(rune('a'+i/26)),
			PostedAt:       base.Add(time.Duration(i) * time.Hour),
		})
	}
	require.NoError(t, db.CreateInBatches(posts, 50).Error)

	svc := newTestMetricsService(db)
	recent, err := svc.GetRecentPosts(context.Background(), acc.ID, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
	assert.True(t, recent[0].PostedAt.After(recent[1].PostedAt))

	recent, err = svc.GetRecentPosts(context.Background(), acc.ID, 500)
	require.NoError(t, err)
	assert.Len(t, recent, 100)
}
