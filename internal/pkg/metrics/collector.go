package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// YouTubeRequests 按接口与状态统计的 YouTube API 调用次数，用于观察配额消耗
	YouTubeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "youtube_api_requests_total",
		Help: "YouTube Data API requests by endpoint and outcome.",
	}, []string{"endpoint", "status"})

	// SyncAccounts 单账号同步结果计数，trigger 取 manual / batch
	SyncAccounts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_accounts_total",
		Help: "Account sync outcomes by trigger and status.",
	}, []string{"trigger", "status"})

	SyncBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_batch_duration_seconds",
		Help:    "Wall-clock duration of a full batch sync.",
		Buckets: []float64{1, 5, 10, 20, 30, 45, 60, 90},
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by the redis rate limiter.",
	}, []string{"route"})
)
