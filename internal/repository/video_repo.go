package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"Nebula_Tube/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	// 已发布视频的分页Feed，带总数
	FindPublishedPage(offset, limit int) ([]model.Video, int64, error)
	FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Video, int64, error)
	FindRecentByOwner(ownerID uint64, limit int) ([]model.Video, error)
	IDsByOwner(ownerID uint64) ([]uint64, error)
	CountByOwner(ownerID uint64) (int64, error)
	SumViewsByOwner(ownerID uint64) (int64, error)
	UpdateFields(videoID uint64, fields map[string]interface{}) error
	IncrementViews(videoID uint64) error
	Delete(videoID uint64) error
	DeleteByOwner(ownerID uint64) error
	SearchPublished(keyword string, limit int) ([]model.Video, error)

	// Redis缓存：视频详情是读最重的一条路径
	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	DelVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{db: db, rdb: rdb}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例（事务里不碰Redis）
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// 利用videoID找视频，preload其中的Owner结构
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindPublishedPage(offset, limit int) ([]model.Video, int64, error) {
	var videos []model.Video
	var total int64
	if err := r.db.Model(&model.Video{}).Where("is_published = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Owner").
		Where("is_published = ?", true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) FindByOwnerPage(ownerID uint64, offset, limit int) ([]model.Video, int64, error) {
	var videos []model.Video
	var total int64
	query := r.db.Model(&model.Video{}).Where("owner_id = ? AND is_published = ?", ownerID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Owner").
		Where("owner_id = ? AND is_published = ?", ownerID, true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) FindRecentByOwner(ownerID uint64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *videoRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *videoRepository) SumViewsByOwner(ownerID uint64) (int64, error) {
	// COALESCE兜底：没有视频时SUM是NULL
	var total int64
	err := r.db.Model(&model.Video{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (r *videoRepository) UpdateFields(videoID uint64, fields map[string]interface{}) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).Updates(fields).Error
}

// IncrementViews 原子自增：UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
// 播放量只增不减，靠这条路径单调递增
func (r *videoRepository) IncrementViews(videoID uint64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) Delete(videoID uint64) error {
	return r.db.Delete(&model.Video{}, videoID).Error
}

func (r *videoRepository) DeleteByOwner(ownerID uint64) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Video{}).Error
}

func (r *videoRepository) SearchPublished(keyword string, limit int) ([]model.Video, error) {
	var videos []model.Video
	pattern := "%" + keyword + "%"
	err := r.db.Preload("Owner").
		Where("is_published = ? AND (title LIKE ? OR description LIKE ?)", true, pattern, pattern).
		Order("created_at desc").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息：1、利用VideoID组装key 2、GET取出JSON 3、反序列化
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，但Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), key, videoJSON, expiration).Err()
}

// DelVideoCache 更新/删除视频后把缓存也清掉，避免读到旧数据
func (r *videoRepository) DelVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
