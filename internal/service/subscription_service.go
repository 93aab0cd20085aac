package service

import (
	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

type SubscriptionService interface {
	// Toggle 订阅/取关，返回操作后的状态和频道最新粉丝数
	Toggle(subscriberID, channelID uint64) (*dto.SubscriptionStatus, error)
	Status(subscriberID, channelID uint64) (*dto.SubscriptionStatus, error)
	Subscribers(channelID uint64) ([]dto.SubscriberItem, error)
	Channels(subscriberID uint64) ([]dto.ChannelItem, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, userRepo: userRepo}
}

// 订阅toggle逻辑：1、不能订阅自己 2、频道必须存在 3、有则删无则插
// 4、并发重复订阅撞1062按"已订阅"处理，和点赞同一套恢复策略
func (s *subscriptionService) Toggle(subscriberID, channelID uint64) (*dto.SubscriptionStatus, error) {
	if subscriberID == channelID {
		return nil, apperr.BadRequest("不能订阅自己的频道")
	}
	exists, err := s.userRepo.ExistsByID(channelID)
	if err != nil {
		return nil, apperr.Internal("查询频道失败", err)
	}
	if !exists {
		return nil, apperr.NotFound("频道不存在")
	}

	existing, err := s.subscriptionRepo.Find(subscriberID, channelID)
	if err != nil && !isNotFound(err) {
		return nil, apperr.Internal("查询订阅状态失败", err)
	}

	var isSubscribed bool
	if existing != nil {
		if err := s.subscriptionRepo.DeleteByID(existing.ID); err != nil {
			return nil, apperr.Internal("取消订阅失败", err)
		}
		isSubscribed = false
	} else {
		sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		err := s.subscriptionRepo.Create(sub)
		switch {
		case err == nil:
			isSubscribed = true
		case isDuplicateKey(err):
			// 并发重复订阅，另一个请求抢先了，状态就是"已订阅"
			isSubscribed = true
		default:
			return nil, apperr.Internal("订阅失败", err)
		}
	}

	count, err := s.subscriptionRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, apperr.Internal("统计粉丝数失败", err)
	}
	return &dto.SubscriptionStatus{IsSubscribed: isSubscribed, SubscriberCount: count}, nil
}

func (s *subscriptionService) Status(subscriberID, channelID uint64) (*dto.SubscriptionStatus, error) {
	exists, err := s.userRepo.ExistsByID(channelID)
	if err != nil {
		return nil, apperr.Internal("查询频道失败", err)
	}
	if !exists {
		return nil, apperr.NotFound("频道不存在")
	}

	isSubscribed := false
	if subscriberID != 0 {
		isSubscribed, err = s.subscriptionRepo.Exists(subscriberID, channelID)
		if err != nil {
			return nil, apperr.Internal("查询订阅状态失败", err)
		}
	}
	count, err := s.subscriptionRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, apperr.Internal("统计粉丝数失败", err)
	}
	return &dto.SubscriptionStatus{IsSubscribed: isSubscribed, SubscriberCount: count}, nil
}

func (s *subscriptionService) Subscribers(channelID uint64) ([]dto.SubscriberItem, error) {
	exists, err := s.userRepo.ExistsByID(channelID)
	if err != nil {
		return nil, apperr.Internal("查询频道失败", err)
	}
	if !exists {
		return nil, apperr.NotFound("频道不存在")
	}
	subs, err := s.subscriptionRepo.ListSubscribers(channelID)
	if err != nil {
		return nil, apperr.Internal("查询粉丝列表失败", err)
	}
	return dto.ToSubscriberItems(subs), nil
}

func (s *subscriptionService) Channels(subscriberID uint64) ([]dto.ChannelItem, error) {
	subs, err := s.subscriptionRepo.ListChannels(subscriberID)
	if err != nil {
		return nil, apperr.Internal("查询关注列表失败", err)
	}
	return dto.ToChannelItems(subs), nil
}
