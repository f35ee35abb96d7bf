package handler

import (
	"ContentTracker/internal/api/dto"
	"ContentTracker/internal/pkg/response"
	"ContentTracker/internal/pkg/util"
	"ContentTracker/internal/service"

	"github.com/gin-gonic/gin"
)

type YouTubeHandler struct {
	youtubeSvc service.YouTubeService
}

func NewYouTubeHandler(youtubeSvc service.YouTubeService) *YouTubeHandler {
	return &YouTubeHandler{
		youtubeSvc: youtubeSvc,
	}
}

// LookupChannel ?handle= 或 ?channelId=
func (h *YouTubeHandler) LookupChannel(c *gin.Context) {
	channel, err := h.youtubeSvc.LookupChannel(c.Request.Context(), c.Query("handle"), c.Query("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, channel)
}

// FetchChannel 一次性拉取频道与最近视频，不落库
func (h *YouTubeHandler) FetchChannel(c *gin.Context) {
	var req dto.FetchChannelReqDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := h.youtubeSvc.FetchChannel(c.Request.Context(), req.ChannelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
