package api

import (
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/api/middleware"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware(metricsPath))
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	logger.SetupGin(r, metricsPath)

	r.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		accountGroup := apiGroup.Group("/accounts")
		{
			accountGroup.GET("", group.AccountHandler.ListAccounts)
			accountGroup.POST("", group.AccountHandler.CreateAccount)
			accountGroup.GET("/:account_id", group.AccountHandler.GetAccountDetail)
			accountGroup.DELETE("/:account_id", group.AccountHandler.DeleteAccount)
			accountGroup.GET("/:account_id/snapshots", group.AccountHandler.ListSnapshots)
			accountGroup.GET("/:account_id/followers", group.AccountHandler.GetFollowerHistory)
			accountGroup.GET("/:account_id/followers/latest", group.AccountHandler.GetLatestFollowers)
			accountGroup.GET("/:account_id/posts", group.AccountHandler.GetRecentPosts)
			accountGroup.GET("/:account_id/stats", group.AccountHandler.GetAccountStats)

			// 手动同步消耗 API 配额，按账号限流
			accountGroup.POST("/:account_id/sync",
				middleware.SyncRateLimitMiddleware(cfg.RateLimit, consts.SyncRateLimitKey, "account_id"),
				group.SyncHandler.SyncAccount,
			)
		}

		cronGroup := apiGroup.Group("/cron")
		{
			cronGroup.GET("/sync-youtube", group.SyncHandler.BatchSync)
			cronGroup.GET("/sync-youtube/last", group.SyncHandler.LastBatchReport)
		}

		youtubeGroup := apiGroup.Group("/youtube")
		{
			youtubeGroup.GET("/channel", group.YouTubeHandler.LookupChannel)
			youtubeGroup.POST("/sync", group.YouTubeHandler.FetchChannel)
		}
	}

	return r
}
