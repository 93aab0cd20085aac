package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

// UserInfo 是嵌在其他响应里的、简化的用户名片
type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// UserResponse 是完整的用户资料，密码和refreshToken永远不在这里出现
type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChannelProfileResponse 是频道主页：资料加上各种统计
type ChannelProfileResponse struct {
	Channel           UserResponse `json:"channel"`
	SubscriberCount   int64        `json:"subscriberCount"`
	SubscribedToCount int64        `json:"subscribedToCount"`
	IsSubscribed      bool         `json:"isSubscribed"`
	VideoCount        int64        `json:"videoCount"`
}

func ToUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

// ToUserResponse 把DB模型转换为API响应模型，敏感字段在这里被自然地丢掉
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
	}
}
