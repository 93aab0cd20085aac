package model

// 用户与频道（也是用户）的关注关系，联合唯一索引防止重复订阅
// subscriber == channel 的自关注在service层拦截
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"uniqueIndex:idx_sub_channel;not null" json:"subscriberId"`
	ChannelID    uint64 `gorm:"uniqueIndex:idx_sub_channel;not null" json:"channelId"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"-"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
