package service

import (
	"ContentTracker/internal/model"
	"ContentTracker/internal/pkg/database/dbtest"
	"ContentTracker/internal/pkg/redis"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/pkg/youtube"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errTransport = errors.New("dial tcp: connection refused")

// fakeFetcher 内存版的频道数据源
type fakeFetcher struct {
	mu       sync.Mutex
	apiKey   bool
	channels map[string]*youtube.Channel
	handles  map[string]string
	videos   map[string][]*youtube.Video
	failIDs  map[string]error
	delay    time.Duration
	calls    map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		apiKey:   true,
		channels: map[string]*youtube.Channel{},
		handles:  map[string]string{},
		videos:   map[string][]*youtube.Video{},
		failIDs:  map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeFetcher) addChannel(id, handle string, subscribers int64, videoCount int) {
	f.channels[id] = &youtube.Channel{
		ID:           id,
		Title:        "Channel " + id,
		CustomURL:    "@" + handle,
		ThumbnailURL: "http://img/" + id + ".jpg",
		Stats:        youtube.ChannelStats{SubscriberCount: subscribers, ViewCount: subscribers * 100},
	}
	f.handles[handle] = id
	videos := make([]*youtube.Video, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		videos = append(videos, &youtube.Video{
			ID:          id + "-v" + string(rune('a'+i)),
			Title:       "video",
			PublishedAt: time.Now().Add(-time.Duration(i+1) * time.Hour),
			Stats:       youtube.VideoStats{ViewCount: 100, LikeCount: int64(10 + i), CommentCount: 1},
		})
	}
	f.videos[id] = videos
}

func (f *fakeFetcher) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeFetcher) hit(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeFetcher) HasAPIKey() bool { return f.apiKey }

func (f *fakeFetcher) GetChannelByHandle(_ context.Context, handle string) (*youtube.Channel, error) {
	f.hit("handle")
	if id, ok := f.handles[handle]; ok {
		return f.channels[id], nil
	}
	return nil, nil
}

func (f *fakeFetcher) GetChannelByID(_ context.Context, id string) (*youtube.Channel, error) {
	f.hit("id")
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := f.failIDs[id]; err != nil {
		return nil, err
	}
	return f.channels[id], nil
}

func (f *fakeFetcher) GetChannelVideos(_ context.Context, id string, maxResults int) ([]*youtube.Video, error) {
	f.hit("videos")
	videos := f.videos[id]
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

func (f *fakeFetcher) GetAllChannelVideos(_ context.Context, id string) ([]*youtube.Video, error) {
	f.hit("all_videos")
	return f.videos[id], nil
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })
	return mr
}

func insertAccount(t *testing.T, db *gorm.DB, platform, username, platformID string) *model.Account {
	t.Helper()
	acc := &model.Account{
		Platform:          platform,
		Username:          username,
		DisplayName:       username,
		PlatformAccountID: util.PtrString(platformID),
	}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func countRows(t *testing.T, db *gorm.DB, m any, accountID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where("account_id = ?", accountID).Count(&n).Error)
	return n
}

func newTestDB(t *testing.T) *gorm.DB {
	return dbtest.NewDB(t)
}
