package api

import "ContentTracker/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AccountHandler *handler.AccountHandler
	SyncHandler    *handler.SyncHandler
	YouTubeHandler *handler.YouTubeHandler
}
