package model

import "time"

// gorm默认的gorm.Model里ID是uint类型，统一成uint64，所以自己搞了个base结构体
// 注意这里没有DeletedAt：点赞/订阅这类关系表靠联合唯一索引保证幂等，
// 软删除的残留行会和唯一索引冲突（取消后再点赞会撞索引），所以全部用硬删除
type BaseModel struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
