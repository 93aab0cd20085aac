package handler

import (
	"net/http"

	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	searchService    service.SearchService
}

func NewDashboardHandler(dashboardService service.DashboardService, searchService service.SearchService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, searchService: searchService}
}

// Stats GET /api/v1/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, stats, "ok")
}

// Search GET /api/v1/search?q=
func (h *DashboardHandler) Search(c *gin.Context) {
	result, err := h.searchService.Search(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result, "ok")
}

// Healthcheck GET /healthcheck
func Healthcheck(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"status": "ok"}, "服务正常")
}
