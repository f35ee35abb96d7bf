package wire

import (
	"ContentTracker/internal/api"
	"ContentTracker/internal/api/config"
	"ContentTracker/internal/api/handler"
	"ContentTracker/internal/job"
	"ContentTracker/internal/pkg/cron"
	"ContentTracker/internal/pkg/kafka"
	"ContentTracker/internal/pkg/tracing"
	"ContentTracker/internal/pkg/youtube"
	"ContentTracker/internal/repository"
	"ContentTracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	Handler   http.Handler
	DB        *gorm.DB
	CronMgr   *cron.Manager
	Publisher kafka.SyncEventPublisher
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	publisher, err := kafka.NewSyncEventPublisher(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	ytClient := youtube.NewClient(cfg.YouTube)

	accountRepo := repository.NewAccountRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)
	postRepo := repository.NewPostRepo(db)

	accountService := service.NewAccountService(accountRepo, snapshotRepo, postRepo, ytClient, cfg.YouTube)
	metricsService := service.NewMetricsService(accountRepo, snapshotRepo, postRepo)
	syncService := service.NewSyncService(accountRepo, snapshotRepo, postRepo, ytClient, cfg.YouTube, cfg.Cron, publisher)
	youtubeService := service.NewYouTubeService(ytClient, cfg.YouTube)

	handlers := &api.HandlersGroup{
		AccountHandler: handler.NewAccountHandler(accountService, metricsService),
		SyncHandler:    handler.NewSyncHandler(syncService),
		YouTubeHandler: handler.NewYouTubeHandler(youtubeService),
	}

	router := api.SetupRouter(handlers, cfg)

	var h http.Handler = router
	if tracing.Enabled(cfg.Tracing) {
		h = otelhttp.NewHandler(router, "http.server")
	}

	cronMgr := cron.NewCronManager(cfg.Cron, job.NewYouTubeSyncJob(syncService))

	return &ApplicationContainer{
		Router:    router,
		Handler:   h,
		DB:        db,
		CronMgr:   cronMgr,
		Publisher: publisher,
	}, nil
}
