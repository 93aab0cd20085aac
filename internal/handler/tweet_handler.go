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

type TweetHandler struct {
	tweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Create POST /api/v1/tweets
func (h *TweetHandler) Create(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "CreateTweet")

	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}
	tweet, err := h.tweetService.Create(middleware.CurrentUserID(c), req.Content)
	if err != nil {
		logCtx.WithError(err).Warn("发布动态失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, tweet, "动态已发布")
}

// PublicFeed GET /api/v1/tweets
func (h *TweetHandler) PublicFeed(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.tweetService.PublicFeed(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// FollowingFeed GET /api/v1/tweets/following
func (h *TweetHandler) FollowingFeed(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.tweetService.FollowingFeed(middleware.CurrentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// UserFeed GET /api/v1/tweets/user/:username
func (h *TweetHandler) UserFeed(c *gin.Context) {
	page, limit := parsePageQuery(c)
	result, err := h.tweetService.UserFeed(c.Param("username"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// Delete DELETE /api/v1/tweets/:id
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tweetService.Delete(middleware.CurrentUserID(c), tweetID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "动态已删除")
}
