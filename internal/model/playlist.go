package model

// 同一个用户下的播放列表不能重名
type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"uniqueIndex:idx_owner_name;not null" json:"ownerId"`
	Name        string `gorm:"uniqueIndex:idx_owner_name;type:varchar(191);not null" json:"name"`
	Description string `json:"description"`
}
