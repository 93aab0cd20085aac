package model

// Like的目标是多态的：video / comment / tweet 三种，靠TargetType区分
// TargetID在不同TargetType下指向不同的表，所以数据库层面没法建真外键
type TargetType string

const (
	TargetVideo   TargetType = "video"
	TargetComment TargetType = "comment"
	TargetTweet   TargetType = "tweet"
)

// IsValid 校验枚举值，handler层解析参数时用
func (t TargetType) IsValid() bool {
	switch t {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// 联合唯一索引利用的是MySQL数据库的"自动查重"能力，而不是gorm的
// 确保一个用户对同一个目标只能点赞一次，并发下重复插入会报1062，由service层兜底
type Like struct {
	BaseModel
	LikedByID  uint64     `gorm:"uniqueIndex:idx_like_target;not null" json:"likedBy"`
	TargetID   uint64     `gorm:"uniqueIndex:idx_like_target;not null" json:"targetId"`
	TargetType TargetType `gorm:"uniqueIndex:idx_like_target;type:varchar(16);not null" json:"targetType"`
}

func (Like) TableName() string {
	return "likes"
}
