package handler

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/pkg/consts"
	"ContentTracker/internal/pkg/response"
	"ContentTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
	metricsSvc service.MetricsService
}

func NewAccountHandler(accountSvc service.AccountService, metricsSvc service.MetricsService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
		metricsSvc: metricsSvc,
	}
}

// ListAccounts 账号列表，可按 platform 过滤
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), c.Query("platform"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accounts)
}

// CreateAccount 登记账号
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	account, err := h.accountSvc.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (h *AccountHandler) GetAccountDetail(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	detail, err := h.accountSvc.GetAccountDetail(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.accountSvc.DeleteAccount(c.Request.Context(), accountID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListSnapshots 全部粉丝快照，按时间升序
func (h *AccountHandler) ListSnapshots(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	snapshots, err := h.metricsSvc.ListSnapshots(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, snapshots)
}

// GetFollowerHistory 粉丝趋势，days 默认 30
func (h *AccountHandler) GetFollowerHistory(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	history, err := h.metricsSvc.GetFollowerHistory(c.Request.Context(), accountID, queryInt(c, "days", consts.DefaultHistoryDays))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}

func (h *AccountHandler) GetRecentPosts(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	posts, err := h.metricsSvc.GetRecentPosts(c.Request.Context(), accountID, queryInt(c, "limit", consts.DefaultRecentPostLimit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (h *AccountHandler) GetAccountStats(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	stats, err := h.metricsSvc.GetAccountStats(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetLatestFollowers 最新快照的粉丝数，尚无快照时 data 为 null
func (h *AccountHandler) GetLatestFollowers(c *gin.Context) {
	accountID, ok := parseAccountID(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	count, err := h.metricsSvc.GetLatestFollowerCount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}
