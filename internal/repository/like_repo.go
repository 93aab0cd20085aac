package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	Find(likedByID, targetID uint64, targetType model.TargetType) (*model.Like, error)
	Exists(likedByID, targetID uint64, targetType model.TargetType) (bool, error)
	DeleteByID(likeID uint64) error
	Count(targetID uint64, targetType model.TargetType) (int64, error)
	// 一批目标（比如某用户的所有视频）总共收到多少赞
	CountByTargetIDs(targetType model.TargetType, targetIDs []uint64) (int64, error)
	DeleteByUser(likedByID uint64) error
	// 目标（视频/评论/动态）被删时，指向它的赞也一起清
	DeleteByTargetIDs(targetType model.TargetType, targetIDs []uint64) error

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

// Create 直接插入，并发下撞联合唯一索引会返回MySQL的1062，由service层兜底处理
func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Find(likedByID, targetID uint64, targetType model.TargetType) (*model.Like, error) {
	var like model.Like
	err := r.db.
		Where("liked_by_id = ? AND target_id = ? AND target_type = ?", likedByID, targetID, targetType).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Exists(likedByID, targetID uint64, targetType model.TargetType) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("liked_by_id = ? AND target_id = ? AND target_type = ?", likedByID, targetID, targetType).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) DeleteByID(likeID uint64) error {
	return r.db.Delete(&model.Like{}, likeID).Error
}

func (r *likeRepository) Count(targetID uint64, targetType model.TargetType) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByTargetIDs(targetType model.TargetType, targetIDs []uint64) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_type = ? AND target_id IN (?)", targetType, targetIDs).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByUser(likedByID uint64) error {
	return r.db.Where("liked_by_id = ?", likedByID).Delete(&model.Like{}).Error
}

func (r *likeRepository) DeleteByTargetIDs(targetType model.TargetType, targetIDs []uint64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.
		Where("target_type = ? AND target_id IN (?)", targetType, targetIDs).
		Delete(&model.Like{}).Error
}
