package model

type User struct {
	BaseModel
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	FullName string `gorm:"not null" json:"fullName"`
	// json:"-" 是最后一道防线，正常响应都走dto，但就怕哪天有人直接把model塞进c.JSON
	Password     string `gorm:"not null" json:"-"`
	Avatar       string `gorm:"not null" json:"avatar"`
	CoverImage   string `json:"coverImage"`
	RefreshToken string `json:"-"`
}
