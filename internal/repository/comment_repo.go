package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)

	// 分页获取视频的一级评论（不含回复），按时间倒序
	FindTopLevelPage(videoID uint64, offset, limit int) ([]model.Comment, int64, error)
	// 一批一级评论各自有多少条回复，GROUP BY一次查完
	CountRepliesByParentIDs(parentIDs []uint64) (map[uint64]int64, error)
	// 某条一级评论下的回复，按时间正序
	FindRepliesByParent(parentID uint64) ([]model.Comment, error)
	FindRecentByOwner(ownerID uint64, limit int) ([]model.Comment, error)

	UpdateContent(commentID uint64, content string) error
	Delete(commentID uint64) error
	// 删掉某条一级评论的所有直接回复
	DeleteRepliesOf(parentID uint64) error
	DeleteByOwner(ownerID uint64) error
	// 视频被删时，视频下所有评论（含回复）一起清
	DeleteByVideoIDs(videoIDs []uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// 利用commentID找comment，并顺便将Owner给Preload进去
func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("Owner").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *commentRepository) FindTopLevelPage(videoID uint64, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64
	if err := r.db.Model(&model.Comment{}).
		Where("video_id = ? AND parent_id IS NULL", videoID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Owner"). // 预加载评论的作者信息
		Where("video_id = ? AND parent_id IS NULL", videoID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

func (r *commentRepository) CountRepliesByParentIDs(parentIDs []uint64) (map[uint64]int64, error) {
	result := make(map[uint64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		ParentID uint64
		Count    int64
	}
	err := r.db.Model(&model.Comment{}).
		Select("parent_id AS parent_id, COUNT(*) AS count").
		Where("parent_id IN (?)", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ParentID] = row.Count
	}
	return result, nil
}

func (r *commentRepository) FindRepliesByParent(parentID uint64) ([]model.Comment, error) {
	var replies []model.Comment
	err := r.db.
		Preload("Owner").
		Where("parent_id = ?", parentID).
		Order("created_at asc"). // 回复通常按时间正序排列
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) FindRecentByOwner(ownerID uint64, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Preload("Video"). // 仪表盘上要显示评论落在哪个视频下
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateContent(commentID uint64, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", commentID).
		Update("content", content).Error
}

func (r *commentRepository) Delete(commentID uint64) error {
	return r.db.Delete(&model.Comment{}, commentID).Error
}

func (r *commentRepository) DeleteRepliesOf(parentID uint64) error {
	return r.db.Where("parent_id = ?", parentID).Delete(&model.Comment{}).Error
}

func (r *commentRepository) DeleteByOwner(ownerID uint64) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Comment{}).Error
}

func (r *commentRepository) DeleteByVideoIDs(videoIDs []uint64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return r.db.Where("video_id IN (?)", videoIDs).Delete(&model.Comment{}).Error
}
