package handler

import (
	"net/http"

	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle 视频/评论/动态共用一个实现，目标类型在路由注册时固定
// POST /api/v1/videos/:id/like、/comments/:id/like、/tweets/:id/like
func (h *LikeHandler) Toggle(targetType model.TargetType) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		status, err := h.likeService.Toggle(middleware.CurrentUserID(c), targetID, targetType)
		if err != nil {
			respondError(c, err)
			return
		}
		message := "已点赞"
		if !status.IsLiked {
			message = "已取消点赞"
		}
		respondSuccess(c, http.StatusOK, status, message)
	}
}

// Status GET /api/v1/videos/:id/like 等；匿名也能看计数，isLiked恒为false
func (h *LikeHandler) Status(targetType model.TargetType) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := parseIDParam(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		status, err := h.likeService.Status(middleware.CurrentUserID(c), targetID, targetType)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, http.StatusOK, status, "ok")
	}
}
