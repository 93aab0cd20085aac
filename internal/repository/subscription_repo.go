package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	Find(subscriberID, channelID uint64) (*model.Subscription, error)
	Exists(subscriberID, channelID uint64) (bool, error)
	DeleteByID(subID uint64) error

	// 某频道的粉丝列表，带上粉丝的用户信息
	ListSubscribers(channelID uint64) ([]model.Subscription, error)
	// 某用户关注的频道列表，带上频道的用户信息
	ListChannels(subscriberID uint64) ([]model.Subscription, error)
	// 只要频道ID，动态Feed用
	ChannelIDsOf(subscriberID uint64) ([]uint64, error)
	CountSubscribers(channelID uint64) (int64, error)
	CountSubscribedTo(subscriberID uint64) (int64, error)
	// 注销账号时两个方向的订阅关系都要清
	DeleteByUser(userID uint64) error

	WithTx(tx *gorm.DB) SubscriptionRepository
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) WithTx(tx *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: tx}
}

// Create 直接插入，重复订阅撞联合唯一索引返回1062，由service层兜底
func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Find(subscriberID, channelID uint64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Exists(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) DeleteByID(subID uint64) error {
	return r.db.Delete(&model.Subscription{}, subID).Error
}

func (r *subscriptionRepository) ListSubscribers(channelID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.
		Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) ListChannels(subscriberID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.
		Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) ChannelIDsOf(subscriberID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Pluck("channel_id", &ids).Error
	return ids, err
}

func (r *subscriptionRepository) CountSubscribers(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribedTo(subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) DeleteByUser(userID uint64) error {
	return r.db.
		Where("subscriber_id = ? OR channel_id = ?", userID, userID).
		Delete(&model.Subscription{}).Error
}
