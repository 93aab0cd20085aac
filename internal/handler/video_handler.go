package handler

import (
	"net/http"
	"strconv"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"
	"Nebula_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoService service.VideoService
	tempDir      string
}

func NewVideoHandler(videoService service.VideoService, tempDir string) *VideoHandler {
	return &VideoHandler{videoService: videoService, tempDir: tempDir}
}

// parseIDParam 从路径参数里解析数字主键
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.BadRequest("ID格式不正确")
	}
	return id, nil
}

// parsePageQuery 从查询参数里取page/limit，非法值交给service层收敛
func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return page, limit
}

// Upload POST /api/v1/videos（multipart：videoFile + thumbnail + 表单字段）
func (h *VideoHandler) Upload(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "UploadVideo")

	var req dto.UploadVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	videoPath, videoType := "", ""
	if fh, err := c.FormFile("videoFile"); err == nil {
		videoPath, videoType, err = saveTempFile(c, fh, h.tempDir)
		if err != nil {
			logCtx.WithError(err).Error("保存上传文件失败")
			respondError(c, apperr.Internal("保存上传文件失败", err))
			return
		}
	}
	thumbPath, thumbType := "", ""
	if fh, err := c.FormFile("thumbnail"); err == nil {
		thumbPath, thumbType, err = saveTempFile(c, fh, h.tempDir)
		if err != nil {
			logCtx.WithError(err).Error("保存上传文件失败")
			respondError(c, apperr.Internal("保存上传文件失败", err))
			return
		}
	}

	ownerID := middleware.CurrentUserID(c)
	video, err := h.videoService.Upload(c.Request.Context(), ownerID, &req, videoPath, videoType, thumbPath, thumbType)
	if err != nil {
		logCtx.WithError(err).WithField("user_id", ownerID).Warn("投稿失败")
		respondError(c, err)
		return
	}

	logCtx.WithField("user_id", ownerID).WithField("video_id", video.ID).Info("投稿成功")
	respondSuccess(c, http.StatusCreated, video, "投稿成功")
}

// Detail GET /api/v1/videos/:id
func (h *VideoHandler) Detail(c *gin.Context) {
	videoID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	video, err := h.videoService.GetByID(videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, video, "ok")
}

// Feed GET /api/v1/videos
func (h *VideoHandler) Feed(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.videoService.GetFeedPage(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// UserFeed GET /api/v1/videos/user/:username
func (h *VideoHandler) UserFeed(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.videoService.GetUserPage(c.Param("username"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// Update PATCH /api/v1/videos/:id（multipart，封面可选）
func (h *VideoHandler) Update(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "UpdateVideo")

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	thumbPath, thumbType := "", ""
	if fh, err := c.FormFile("thumbnail"); err == nil {
		thumbPath, thumbType, err = saveTempFile(c, fh, h.tempDir)
		if err != nil {
			logCtx.WithError(err).Error("保存上传文件失败")
			respondError(c, apperr.Internal("保存上传文件失败", err))
			return
		}
	}

	video, err := h.videoService.Update(c.Request.Context(), middleware.CurrentUserID(c), videoID, &req, thumbPath, thumbType)
	if err != nil {
		logCtx.WithError(err).WithField("video_id", videoID).Warn("更新视频失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, video, "视频已更新")
}

// Delete DELETE /api/v1/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "DeleteVideo")

	videoID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	actorID := middleware.CurrentUserID(c)
	if err := h.videoService.Delete(actorID, videoID); err != nil {
		logCtx.WithError(err).WithField("video_id", videoID).Warn("删除视频失败")
		respondError(c, err)
		return
	}
	logCtx.WithField("user_id", actorID).WithField("video_id", videoID).Info("视频已删除")
	respondSuccess(c, http.StatusOK, nil, "视频已删除")
}
