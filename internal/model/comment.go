package model

type Comment struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index" json:"videoId"`
	OwnerID uint64 `gorm:"not null;index" json:"ownerId"`
	Content string `gorm:"type:text;not null" json:"content"`
	// 指针*uint64的零值是nil，这样就可以区分是一级评论还是二级回复
	ParentID *uint64 `gorm:"index" json:"parentId"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"-"`
	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

// 想精确控制表名，就必须实现TableName()方法规定表名
func (Comment) TableName() string {
	return "comments"
}
