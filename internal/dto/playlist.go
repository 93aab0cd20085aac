package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

type PlaylistResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlaylistVideoItem 是列表里的一个视频条目：加入时间 + 视频卡片（带作者）
type PlaylistVideoItem struct {
	AddedAt time.Time     `json:"addedAt"`
	Video   VideoResponse `json:"video"`
}

// PlaylistWithVideos 是"我的播放列表"/列表详情的形状
type PlaylistWithVideos struct {
	PlaylistResponse
	Videos []PlaylistVideoItem `json:"videos"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
	}
}

func ToPlaylistVideoItems(items []model.PlaylistVideo) []PlaylistVideoItem {
	response := make([]PlaylistVideoItem, 0, len(items))
	for i := range items {
		response = append(response, PlaylistVideoItem{
			AddedAt: items[i].AddedAt,
			Video:   ToVideoResponse(&items[i].Video),
		})
	}
	return response
}
