package model

import "time"

// 观看历史：一个用户对一个视频只留一条记录，重复观看只更新WatchedAt
type WatchHistory struct {
	BaseModel
	UserID    uint64    `gorm:"uniqueIndex:idx_user_video;not null" json:"userId"`
	VideoID   uint64    `gorm:"uniqueIndex:idx_user_video;not null" json:"videoId"`
	WatchedAt time.Time `gorm:"index" json:"watchedAt"`

	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
