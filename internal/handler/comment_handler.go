package handler

import (
	"net/http"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"
	"Nebula_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add POST /api/v1/comments/video/:videoId；body里带parentId时是回复
func (h *CommentHandler) Add(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "AddComment")

	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	ownerID := middleware.CurrentUserID(c)
	if req.ParentID != nil {
		reply, err := h.commentService.AddReply(ownerID, *req.ParentID, req.Content)
		if err != nil {
			logCtx.WithError(err).Warn("发表回复失败")
			respondError(c, err)
			return
		}
		respondSuccess(c, http.StatusCreated, reply, "回复成功")
		return
	}

	comment, err := h.commentService.AddComment(ownerID, videoID, req.Content)
	if err != nil {
		logCtx.WithError(err).WithField("video_id", videoID).Warn("发表评论失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, comment, "评论成功")
}

// ListByVideo GET /api/v1/comments/video/:videoId
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	page, limit := parsePageQuery(c)
	result, err := h.commentService.ListByVideo(videoID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// ListReplies GET /api/v1/comments/:id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	replies, err := h.commentService.ListReplies(commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, replies, "ok")
}

// Update PATCH /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}
	comment, err := h.commentService.Update(middleware.CurrentUserID(c), commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, comment, "评论已更新")
}

// Delete DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "DeleteComment")

	commentID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.commentService.Delete(middleware.CurrentUserID(c), commentID); err != nil {
		logCtx.WithError(err).WithField("comment_id", commentID).Warn("删除评论失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "评论已删除")
}
