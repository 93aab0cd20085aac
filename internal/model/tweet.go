package model

// 短文动态，内容上限280字符，超长在service层拦截，size:280只是数据库兜底
type Tweet struct {
	BaseModel
	OwnerID uint64 `gorm:"not null;index" json:"ownerId"`
	Content string `gorm:"size:280;not null" json:"content"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
