package model

import "time"

// 播放列表和视频的中间表，同一个视频在同一个列表里只能出现一次
type PlaylistVideo struct {
	BaseModel
	PlaylistID uint64    `gorm:"uniqueIndex:idx_playlist_video;not null" json:"playlistId"`
	VideoID    uint64    `gorm:"uniqueIndex:idx_playlist_video;not null" json:"videoId"`
	AddedAt    time.Time `json:"addedAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
