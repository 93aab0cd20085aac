package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

// WatchHistoryItem 观看历史里的一条：观看时间 + 视频卡片
type WatchHistoryItem struct {
	WatchedAt time.Time `json:"watchedAt"`
	Video     VideoCard `json:"video"`
}

func ToWatchHistoryItems(entries []model.WatchHistory) []WatchHistoryItem {
	response := make([]WatchHistoryItem, 0, len(entries))
	for i := range entries {
		response = append(response, WatchHistoryItem{
			WatchedAt: entries[i].WatchedAt,
			Video:     ToVideoCard(&entries[i].Video),
		})
	}
	return response
}
