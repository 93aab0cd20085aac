package repository

import (
	"Nebula_Tube/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	FindByID(playlistID uint64) (*model.Playlist, error)
	FindByOwner(ownerID uint64) ([]model.Playlist, error)
	IDsByOwner(ownerID uint64) ([]uint64, error)
	CountByOwner(ownerID uint64) (int64, error)
	UpdateFields(playlistID uint64, fields map[string]interface{}) error
	Delete(playlistID uint64) error
	DeleteByOwner(ownerID uint64) error

	// 中间表playlist_videos的操作
	AddVideo(item *model.PlaylistVideo) error
	// 返回删掉的行数，0行说明列表里本来就没有这个视频
	RemoveVideo(playlistID, videoID uint64) (int64, error)
	// 列表内视频按加入时间倒序，连视频和视频作者一起带出来
	FindVideos(playlistID uint64) ([]model.PlaylistVideo, error)
	DeleteVideosOfPlaylist(playlistID uint64) error
	DeleteVideosOfPlaylists(playlistIDs []uint64) error
	// 视频被删时，把它从所有人的播放列表里摘掉
	DeleteVideoRefs(videoIDs []uint64) error

	WithTx(tx *gorm.DB) PlaylistRepository
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) WithTx(tx *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: tx}
}

// Create 重名的列表撞(owner_id, name)唯一索引返回1062，由service层翻译成409
func (r *playlistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(playlistID uint64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.First(&playlist, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) FindByOwner(ownerID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) IDsByOwner(ownerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&model.Playlist{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

func (r *playlistRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Playlist{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *playlistRepository) UpdateFields(playlistID uint64, fields map[string]interface{}) error {
	return r.db.Model(&model.Playlist{}).Where("id = ?", playlistID).Updates(fields).Error
}

func (r *playlistRepository) Delete(playlistID uint64) error {
	return r.db.Delete(&model.Playlist{}, playlistID).Error
}

func (r *playlistRepository) DeleteByOwner(ownerID uint64) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Playlist{}).Error
}

func (r *playlistRepository) AddVideo(item *model.PlaylistVideo) error {
	return r.db.Create(item).Error
}

func (r *playlistRepository) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	result := r.db.
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected, result.Error
}

func (r *playlistRepository) FindVideos(playlistID uint64) ([]model.PlaylistVideo, error) {
	var items []model.PlaylistVideo
	// 嵌套Preload，把视频连同视频作者一次性查出来
	err := r.db.
		Preload("Video").
		Preload("Video.Owner").
		Where("playlist_id = ?", playlistID).
		Order("added_at desc").
		Find(&items).Error
	return items, err
}

func (r *playlistRepository) DeleteVideosOfPlaylist(playlistID uint64) error {
	return r.db.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error
}

func (r *playlistRepository) DeleteVideosOfPlaylists(playlistIDs []uint64) error {
	if len(playlistIDs) == 0 {
		return nil
	}
	return r.db.Where("playlist_id IN (?)", playlistIDs).Delete(&model.PlaylistVideo{}).Error
}

func (r *playlistRepository) DeleteVideoRefs(videoIDs []uint64) error {
	if len(videoIDs) == 0 {
		return nil
	}
	return r.db.Where("video_id IN (?)", videoIDs).Delete(&model.PlaylistVideo{}).Error
}
