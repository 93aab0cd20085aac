package repository

import (
	"time"

	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type WatchRepository interface {
	Create(entry *model.WatchHistory) error
	Find(userID, videoID uint64) (*model.WatchHistory, error)
	// 重复观看只刷新WatchedAt
	TouchWatchedAt(entryID uint64, watchedAt time.Time) error
	// 按最近观看倒序的分页历史，连视频卡片一起带出来
	FindPage(userID uint64, offset, limit int) ([]model.WatchHistory, int64, error)
	FindRecent(userID uint64, limit int) ([]model.WatchHistory, error)
	// 返回删掉的行数，0行说明历史里没有这个视频
	DeleteOne(userID, videoID uint64) (int64, error)
	DeleteAllByUser(userID uint64) error
	// 视频被删时，所有人的观看历史里都不能留下悬挂记录
	DeleteByVideoIDs(videoIDs []uint64) error

	WithTx(tx *gorm.DB) WatchRepository
}

type watchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

func (r *watchRepository) WithTx(tx *gorm.DB) WatchRepository {
	return &watchRepository{db: tx}
}

// Create 同一个(user, video)重复插入撞联合唯一索引返回1062，service层当作并发重看处理
func (r *watchRepository) Create(entry *model.WatchHistory) error {
	return r.db.Create(entry).Error
}

func (r *watchRepository) Find(userID, videoID uint64) (*model.WatchHistory, error) {
	var entry model.WatchHistory
	err := r.db.
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *watchRepository) TouchWatchedAt(entryID uint64, watchedAt time.Time) error {
	return r.db.Model(&model.WatchHistory{}).Where("id = ?", entryID).
		UpdateColumn("watched_at", watchedAt).Error
}

func (r *watchRepository) FindPage(userID uint64, offset, limit int) ([]model.WatchHistory, int64, error) {
	var entries []model.WatchHistory
	var total int64
	if err := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Video").
		Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("watched_at desc").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *watchRepository) FindRecent(userID uint64, limit int) ([]model.WatchHistory, error) {
	var entries []model.WatchHistory
	err := r.db.
		Preload("Video").
		Where("user_id = ?", userID).
		Order("watched_at desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *watchRepository) DeleteOne(userID, videoID uint64) (int64, error) {
	result := r.db.
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Delete(&model.WatchHistory{})
	return result.RowsAffected, result.Error
}

func (r *watchRepository) DeleteAllByUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.WatchHistory{}).Error
}

func (r *watchRepository) DeleteByVideoIDs(videoIDs []uint64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return r.db.Where("video_id IN (?)", videoIDs).Delete(&model.WatchHistory{}).Error
}
