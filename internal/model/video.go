package model

// Video结构，视频都要有什么？作者、标题、简介、播放地址、封面，再加上时长和播放量
type Video struct {
	BaseModel
	OwnerID     uint64  `gorm:"not null;index" json:"ownerId"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Duration    float64 `gorm:"not null" json:"duration"` // 秒
	Views       uint64  `gorm:"default:0" json:"views"`
	IsPublished bool    `gorm:"default:true" json:"isPublished"`

	VideoFile string `gorm:"not null" json:"videoFile"` // 视频播放地址
	Thumbnail string `gorm:"not null" json:"thumbnail"` // 封面地址

	// 外键OwnerID关联User表的ID
	Owner User `gorm:"foreignKey:OwnerID;references:ID" json:"-"`
}
