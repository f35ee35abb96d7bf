package handler

import (
	"ContentTracker/internal/pkg/response"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncSvc service.SyncService
}

func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncSvc: syncSvc,
	}
}

// SyncAccount 手动触发单账号同步
func (h *SyncHandler) SyncAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.syncSvc.SyncAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// BatchSync 外部调度器调用，Authorization: Bearer <secret>
func (h *SyncHandler) BatchSync(c *gin.Context) {
	token := util.BearerToken(c.GetHeader("Authorization"))
	report, err := h.syncSvc.BatchSync(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (h *SyncHandler) LastBatchReport(c *gin.Context) {
	token := util.BearerToken(c.GetHeader("Authorization"))
	report, err := h.syncSvc.LastBatchReport(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}
