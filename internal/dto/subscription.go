package dto

import (
	"time"

	"Nebula_Tube/internal/model"
)

// SubscriberItem 粉丝列表里的一条：什么时候关注的 + 粉丝名片
type SubscriberItem struct {
	SubscribedAt time.Time `json:"subscribedAt"`
	Subscriber   UserInfo  `json:"subscriber"`
}

// ChannelItem 关注列表里的一条：什么时候关注的 + 频道名片
type ChannelItem struct {
	SubscribedAt time.Time `json:"subscribedAt"`
	Channel      UserInfo  `json:"channel"`
}

func ToSubscriberItems(subs []model.Subscription) []SubscriberItem {
	response := make([]SubscriberItem, 0, len(subs))
	for i := range subs {
		item := SubscriberItem{SubscribedAt: subs[i].CreatedAt}
		if subs[i].Subscriber.ID != 0 {
			item.Subscriber = ToUserInfo(&subs[i].Subscriber)
		}
		response = append(response, item)
	}
	return response
}

func ToChannelItems(subs []model.Subscription) []ChannelItem {
	response := make([]ChannelItem, 0, len(subs))
	for i := range subs {
		item := ChannelItem{SubscribedAt: subs[i].CreatedAt}
		if subs[i].Channel.ID != 0 {
			item.Channel = ToUserInfo(&subs[i].Channel)
		}
		response = append(response, item)
	}
	return response
}
