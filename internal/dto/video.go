package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Owner       UserInfo  `json:"owner"`
}

// VideoCard 是列表/历史/播放列表里用的精简卡片
type VideoCard struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Duration  float64   `json:"duration"`
	Views     uint64    `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToVideoResponse 把DB模型转换为API响应模型，正确利用preload返回的数据
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views,
		VideoFile:   video.VideoFile,
		Thumbnail:   video.Thumbnail,
	}
	// 检查Owner是否被成功preload
	if video.Owner.ID != 0 {
		resp.Owner = ToUserInfo(&video.Owner)
	} else {
		// 没有preload就至少把ID带回去
		resp.Owner.ID = video.OwnerID
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}

func ToVideoCard(video *model.Video) VideoCard {
	return VideoCard{
		ID:        video.ID,
		Title:     video.Title,
		Thumbnail: video.Thumbnail,
		Duration:  video.Duration,
		Views:     video.Views,
		CreatedAt: video.CreatedAt,
	}
}
