package handler

import (
	"net/http"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}
	playlist, err := h.playlistService.Create(middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, playlist, "播放列表已创建")
}

// Mine GET /api/v1/playlists/me
func (h *PlaylistHandler) Mine(c *gin.Context) {
	playlists, err := h.playlistService.MyPlaylists(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, playlists, "ok")
}

// Detail GET /api/v1/playlists/:id
func (h *PlaylistHandler) Detail(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	playlist, err := h.playlistService.GetByID(playlistID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, playlist, "ok")
}

// Update PATCH /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}
	playlist, err := h.playlistService.Update(middleware.CurrentUserID(c), playlistID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, playlist, "播放列表已更新")
}

// Delete DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.playlistService.Delete(middleware.CurrentUserID(c), playlistID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "播放列表已删除")
}

// AddVideo POST /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.playlistService.AddVideo(middleware.CurrentUserID(c), playlistID, videoID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "视频已加入播放列表")
}

// RemoveVideo DELETE /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	videoID, err := parseIDParam(c, "videoId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.playlistService.RemoveVideo(middleware.CurrentUserID(c), playlistID, videoID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, nil, "视频已移出播放列表")
}
