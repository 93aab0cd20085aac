package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *model.Tweet) error
	FindByID(tweetID uint64) (*model.Tweet, error)
	// 全站动态分页，带总数
	FindPage(offset, limit int) ([]model.Tweet, int64, error)
	// 只看一批作者（关注的频道）的动态
	FindByOwnersPage(ownerIDs []uint64, offset, limit int) ([]model.Tweet, int64, error)
	FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Tweet, int64, error)
	IDsByOwner(ownerID uint64) ([]uint64, error)
	Delete(tweetID uint64) error
	DeleteByOwner(ownerID uint64) error

	WithTx(tx *gorm.DB) TweetRepository
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) WithTx(tx *gorm.DB) TweetRepository {
	return &tweetRepository{db: tx}
}

func (r *tweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	err := r.db.Preload("Owner").First(&tweet, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) FindPage(offset, limit int) ([]model.Tweet, int64, error) {
	var tweets []model.Tweet
	var total int64
	if err := r.db.Model(&model.Tweet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Owner").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error
	return tweets, total, err
}

func (r *tweetRepository) FindByOwnersPage(ownerIDs []uint64, offset, limit int) ([]model.Tweet, int64, error) {
	var tweets []model.Tweet
	var total int64
	if len(ownerIDs) == 0 {
		return tweets, 0, nil
	}
	if err := r.db.Model(&model.Tweet{}).Where("owner_id IN (?)", ownerIDs).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Owner").
		Where("owner_id IN (?)", ownerIDs).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error
	return tweets, total, err
}

func (r *tweetRepository) FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Tweet, int64, error) {
	var tweets []model.Tweet
	var total int64
	if err := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error
	return tweets, total, err
}

func (r *tweetRepository) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *tweetRepository) Delete(tweetID uint64) error {
	return r.db.Delete(&model.Tweet{}, tweetID).Error
}

func (r *tweetRepository) DeleteByOwner(ownerID uint64) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Tweet{}).Error
}
