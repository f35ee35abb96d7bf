package wire

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/pkg/database/dbtest"
	"ContentTracker/internal/pkg/redis"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fakeYouTube 单频道 UCdemo，handle 为 demo，共 3 条视频
func fakeYouTube(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/channels", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("forHandle") != "demo" && q.Get("id") != "UCdemo" {
			_, _ = w.Write([]byte(`{"items":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"UCdemo","snippet":{"title":"Demo Channel","customUrl":"@demo",
"thumbnails":{"medium":{"url":"http://img/m.jpg"}}},
"statistics":{"subscriberCount":"1500","viewCount":"64000","videoCount":"3"},
"contentDetails":{"relatedPlaylists":{"uploads":"UUdemo"}}}]}`))
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
{"snippet":{"resourceId":{"videoId":"v1"}}},
{"snippet":{"resourceId":{"videoId":"v2"}}},
{"snippet":{"resourceId":{"videoId":"v3"}}}]}`))
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, 0)
		for i, id := range strings.Split(r.URL.Query().Get("id"), ",") {
			items = append(items, fmt.Sprintf(`{"id":"%s","snippet":{"title":"Video %s","publishedAt":"2024-06-0%dT08:00:00Z"},
"statistics":{"viewCount":"1000","likeCount":"%d","commentCount":"2"}}`, id, id, i+1, (i+1)*10))
		}
		_, _ = w.Write([]byte(`{"items":[` + strings.Join(items, ",") + `]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })

	yt := fakeYouTube(t)
	cfg := &config.Config{
		YouTube: config.YouTubeConfig{
			APIKey:         "key",
			BaseURL:        yt.URL,
			Timeout:        2 * time.Second,
			PageSize:       50,
			RecentLimit:    10,
			LookupCacheTTL: time.Minute,
		},
		Cron:      config.CronConfig{Enable: false, Secret: "cron-secret", BatchTimeout: 10 * time.Second},
		RateLimit: config.RateLimitConfig{SyncLimit: 2, SyncWindow: time.Minute},
	}

	app, err := BuildApplication(dbtest.NewDB(t), cfg)
	require.NoError(t, err)
	require.NotNil(t, app.CronMgr)
	return app.Handler
}

func call(t *testing.T, h http.Handler, method, path, body string, headers ...string) envelope {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestAccountLifecycle(t *testing.T) {
	h := newTestApp(t)

	env := call(t, h, http.MethodGet, "/api/ping", "")
	assert.Equal(t, 200, env.Code)

	env = call(t, h, http.MethodPost, "/api/accounts", `{"platform":"instagram","username":"insta"}`)
	require.Equal(t, 200, env.Code, env.Message)

	env = call(t, h, http.MethodPost, "/api/accounts", `{"platform":"youtube","username":"@demo"}`)
	require.Equal(t, 200, env.Code, env.Message)
	var yt struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &yt))
	assert.Equal(t, "@demo", yt.Username)

	env = call(t, h, http.MethodPost, "/api/accounts", `{"platform":"youtube","username":"@demo"}`)
	assert.Equal(t, 400, env.Code)

	env = call(t, h, http.MethodPost, "/api/accounts", `{"platform":"myspace","username":"x"}`)
	assert.Equal(t, 400, env.Code)

	env = call(t, h, http.MethodGet, "/api/accounts", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	env = call(t, h, http.MethodGet, "/api/accounts?platform=youtube", "")
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	base := fmt.Sprintf("/api/accounts/%d", yt.ID)
	env = call(t, h, http.MethodGet, base, "")
	var detail struct {
		LatestFollowers *int64 `json:"latestFollowers"`
		RecentPosts     []any  `json:"recentPosts"`
		Stats           struct {
			TotalLikes int64 `json:"totalLikes"`
			TotalViews int64 `json:"totalViews"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.NotNil(t, detail.LatestFollowers)
	assert.Equal(t, int64(1500), *detail.LatestFollowers)
	assert.Len(t, detail.RecentPosts, 3)
	assert.Equal(t, int64(60), detail.Stats.TotalLikes)

	env = call(t, h, http.MethodPost, base+"/sync", "")
	require.Equal(t, 200, env.Code, env.Message)
	var res struct {
		SubscriberCount int64 `json:"subscriberCount"`
		VideosUpdated   int   `json:"videosUpdated"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(1500), res.SubscriberCount)
	assert.Equal(t, 3, res.VideosUpdated)

	env = call(t, h, http.MethodGet, base+"/snapshots", "")
	var snaps []any
	require.NoError(t, json.Unmarshal(env.Data, &snaps))
	assert.Len(t, snaps, 2)

	env = call(t, h, http.MethodGet, base+"/stats", "")
	require.NoError(t, json.Unmarshal(env.Data, &detail.Stats))
	assert.Equal(t, int64(3000), detail.Stats.TotalViews)

	env = call(t, h, http.MethodGet, base+"/followers?days=7", "")
	assert.Equal(t, 200, env.Code)
	env = call(t, h, http.MethodGet, base+"/followers/latest", "")
	require.Equal(t, 200, env.Code, env.Message)
	var latest *int64
	require.NoError(t, json.Unmarshal(env.Data, &latest))
	require.NotNil(t, latest)
	assert.Equal(t, int64(1500), *latest)
	env = call(t, h, http.MethodGet, base+"/posts?limit=2", "")
	var posts []any
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	assert.Len(t, posts, 2)

	env = call(t, h, http.MethodDelete, base, "")
	assert.Equal(t, 200, env.Code)
	env = call(t, h, http.MethodGet, base, "")
	assert.Equal(t, 404, env.Code)
	env = call(t, h, http.MethodGet, base+"/followers/latest", "")
	assert.Equal(t, 404, env.Code)
	env = call(t, h, http.MethodGet, "/api/accounts/abc/stats", "")
	assert.Equal(t, 400, env.Code)
}

func TestSyncRateLimitAndUnsupportedPlatform(t *testing.T) {
	h := newTestApp(t)
	env := call(t, h, http.MethodPost, "/api/accounts", `{"platform":"tiktok","username":"tt"}`)
	require.Equal(t, 200, env.Code)
	var acc struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &acc))

	path := fmt.Sprintf("/api/accounts/%d/sync", acc.ID)
	assert.Equal(t, 400, call(t, h, http.MethodPost, path, "").Code)
	assert.Equal(t, 400, call(t, h, http.MethodPost, path, "").Code)
	assert.Equal(t, 429, call(t, h, http.MethodPost, path, "").Code)
}

func TestCronSyncEndpoints(t *testing.T) {
	h := newTestApp(t)
	env := call(t, h, http.MethodPost, "/api/accounts", `{"platform":"youtube","username":"demo"}`)
	require.Equal(t, 200, env.Code, env.Message)

	assert.Equal(t, 401, call(t, h, http.MethodGet, "/api/cron/sync-youtube", "").Code)
	assert.Equal(t, 401, call(t, h, http.MethodGet, "/api/cron/sync-youtube", "", "Authorization", "Bearer nope").Code)
	assert.Equal(t, 404, call(t, h, http.MethodGet, "/api/cron/sync-youtube/last", "", "Authorization", "Bearer cron-secret").Code)

	env = call(t, h, http.MethodGet, "/api/cron/sync-youtube", "", "Authorization", "Bearer cron-secret")
	require.Equal(t, 200, env.Code, env.Message)
	var report struct {
		Success  bool `json:"success"`
		Accounts []struct {
			Status        string `json:"status"`
			VideosUpdated int    `json:"videosUpdated"`
		} `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.Success)
	require.Len(t, report.Accounts, 1)
	assert.Equal(t, "success", report.Accounts[0].Status)
	assert.Equal(t, 3, report.Accounts[0].VideosUpdated)

	env = call(t, h, http.MethodGet, "/api/cron/sync-youtube/last", "", "Authorization", "Bearer cron-secret")
	assert.Equal(t, 200, env.Code)
}

func TestYouTubeLookupEndpoints(t *testing.T) {
	h := newTestApp(t)

	env := call(t, h, http.MethodGet, "/api/youtube/channel?handle=@demo", "")
	require.Equal(t, 200, env.Code, env.Message)
	var ch struct {
		ID              string `json:"id"`
		SubscriberCount int64  `json:"subscriberCount"`
		ThumbnailURL    string `json:"thumbnailUrl"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ch))
	assert.Equal(t, "UCdemo", ch.ID)
	assert.Equal(t, int64(1500), ch.SubscriberCount)
	assert.Equal(t, "http://img/m.jpg", ch.ThumbnailURL)

	assert.Equal(t, 400, call(t, h, http.MethodGet, "/api/youtube/channel", "").Code)
	assert.Equal(t, 404, call(t, h, http.MethodGet, "/api/youtube/channel?channelId=UCnope", "").Code)

	env = call(t, h, http.MethodPost, "/api/youtube/sync", `{"channelId":"UCdemo"}`)
	require.Equal(t, 200, env.Code, env.Message)
	var fetched struct {
		Videos []any `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Len(t, fetched.Videos, 3)

	assert.Equal(t, 400, call(t, h, http.MethodPost, "/api/youtube/sync", `{}`).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestApp(t)
	call(t, h, http.MethodGet, "/api/youtube/channel?handle=demo", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "youtube_api_requests_total")
}
