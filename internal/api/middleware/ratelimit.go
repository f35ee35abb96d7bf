package middleware

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/pkg/metrics"
	"ContentTracker/internal/pkg/redis"
	"ContentTracker/internal/pkg/response"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// SyncRateLimitMiddleware 按 key 固定窗口限流，keyPrefix+路径参数 param 为计数键
// Redis 不可用时放行
func SyncRateLimitMiddleware(cfg config.RateLimitConfig, keyPrefix string, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.SyncLimit <= 0 || cfg.SyncWindow <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := keyPrefix + c.Param(param)
		count, err := redis.IncrWithExpiration(ctx, key, cfg.SyncWindow)
		if err != nil {
			log.WarnContext(ctx, "rate limit check failed", "key", key, "err", err)
			c.Next()
			return
		}

		if count > cfg.SyncLimit {
			metrics.RateLimited.WithLabelValues(c.FullPath()).Inc()
			response.RateLimited(c, cfg.SyncWindow)
			return
		}
		c.Next()
	}
}
