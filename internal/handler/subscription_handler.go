package handler

import (
	"net/http"

	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Toggle POST /api/v1/subscriptions/channel/:channelId
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		respondError(c, err)
		return
	}
	status, err := h.subscriptionService.Toggle(middleware.CurrentUserID(c), channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	message := "已订阅"
	if !status.IsSubscribed {
		message = "已取消订阅"
	}
	respondSuccess(c, http.StatusOK, status, message)
}

// Status GET /api/v1/subscriptions/channel/:channelId
func (h *SubscriptionHandler) Status(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		respondError(c, err)
		return
	}
	status, err := h.subscriptionService.Status(middleware.CurrentUserID(c), channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, status, "ok")
}

// Subscribers GET /api/v1/subscriptions/channel/:channelId/subscribers
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, err := parseIDParam(c, "channelId")
	if err != nil {
		respondError(c, err)
		return
	}
	items, err := h.subscriptionService.Subscribers(channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, items, "ok")
}

// MyChannels GET /api/v1/subscriptions/me
func (h *SubscriptionHandler) MyChannels(c *gin.Context) {
	items, err := h.subscriptionService.Channels(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, items, "ok")
}
