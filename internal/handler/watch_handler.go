package handler

import (
	"net/http"

	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"
	"Nebula_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WatchHandler struct {
	watchService service.WatchService
}

func NewWatchHandler(watchService service.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

// Watch POST /api/v1/watch-history/:videoId
func (h *WatchHandler) Watch(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "Watch")

	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	video, err := h.watchService.Watch(middleware.CurrentUserID(c), videoID)
	if err != nil {
		logCtx.WithError(err).WithField("video_id", videoID).Warn("记录观看失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, video, "ok")
}

// History GET /api/v1/watch-history
func (h *WatchHandler) History(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.watchService.History(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// DeleteOne DELETE /api/v1/watch-history/:videoId
func (h *WatchHandler) DeleteOne(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.watchService.DeleteOne(middleware.CurrentUserID(c), videoID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "观看记录已删除")
}

// DeleteAll DELETE /api/v1/watch-history
func (h *WatchHandler) DeleteAll(c *gin.Context) {
	if err := h.watchService.DeleteAll(middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "观看历史已清空")
}
