package service

import (
	"strings"
	"time"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

type PlaylistService interface {
	Create(ownerID uint64, req *dto.CreatePlaylistRequest) (*dto.PlaylistResponse, error)
	// MyPlaylists 我的所有播放列表，每个都带内嵌的视频条目
	MyPlaylists(ownerID uint64) ([]dto.PlaylistWithVideos, error)
	GetByID(playlistID uint64) (*dto.PlaylistWithVideos, error)
	Update(actorID, playlistID uint64, req *dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error)
	Delete(actorID, playlistID uint64) error
	AddVideo(actorID, playlistID, videoID uint64) error
	RemoveVideo(actorID, playlistID, videoID uint64) error
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	uow          data.UnitOfWork
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	uow data.UnitOfWork,
) PlaylistService {
	return &playlistService{playlistRepo: playlistRepo, videoRepo: videoRepo, uow: uow}
}

// 创建逻辑：名字必填；同一个人的列表不能重名，(owner_id, name)唯一索引
// 把并发创建的竞争也一起挡了
func (s *playlistService) Create(ownerID uint64, req *dto.CreatePlaylistRequest) (*dto.PlaylistResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.BadRequest("播放列表名称不能为空")
	}

	playlist := &model.Playlist{OwnerID: ownerID, Name: name, Description: req.Description}
	if err := s.playlistRepo.Create(playlist); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict("同名播放列表已存在")
		}
		return nil, apperr.Internal("创建播放列表失败", err)
	}
	resp := dto.ToPlaylistResponse(playlist)
	return &resp, nil
}

func (s *playlistService) MyPlaylists(ownerID uint64) ([]dto.PlaylistWithVideos, error) {
	playlists, err := s.playlistRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, apperr.Internal("查询播放列表失败", err)
	}

	response := make([]dto.PlaylistWithVideos, 0, len(playlists))
	for i := range playlists {
		items, err := s.playlistRepo.FindVideos(playlists[i].ID)
		if err != nil {
			return nil, apperr.Internal("查询播放列表视频失败", err)
		}
		response = append(response, dto.PlaylistWithVideos{
			PlaylistResponse: dto.ToPlaylistResponse(&playlists[i]),
			Videos:           dto.ToPlaylistVideoItems(items),
		})
	}
	return response, nil
}

func (s *playlistService) GetByID(playlistID uint64) (*dto.PlaylistWithVideos, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("播放列表不存在")
		}
		return nil, apperr.Internal("查询播放列表失败", err)
	}
	items, err := s.playlistRepo.FindVideos(playlistID)
	if err != nil {
		return nil, apperr.Internal("查询播放列表视频失败", err)
	}
	return &dto.PlaylistWithVideos{
		PlaylistResponse: dto.ToPlaylistResponse(playlist),
		Videos:           dto.ToPlaylistVideoItems(items),
	}, nil
}

func (s *playlistService) Update(actorID, playlistID uint64, req *dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error) {
	playlist, err := s.findOwned(actorID, playlistID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 2)
	if name := strings.TrimSpace(req.Name); name != "" {
		fields["name"] = name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if len(fields) == 0 {
		return nil, apperr.BadRequest("至少提供一个要更新的字段")
	}

	if err := s.playlistRepo.UpdateFields(playlistID, fields); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict("同名播放列表已存在")
		}
		return nil, apperr.Internal("更新播放列表失败", err)
	}

	updated, err := s.playlistRepo.FindByID(playlist.ID)
	if err != nil {
		return nil, apperr.Internal("查询播放列表失败", err)
	}
	resp := dto.ToPlaylistResponse(updated)
	return &resp, nil
}

// 删除逻辑：列表本体和中间表条目在一个事务里一起删
func (s *playlistService) Delete(actorID, playlistID uint64) error {
	if _, err := s.findOwned(actorID, playlistID); err != nil {
		return err
	}
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.PlaylistRepo.DeleteVideosOfPlaylist(playlistID); err != nil {
			return err
		}
		return repos.PlaylistRepo.Delete(playlistID)
	})
	if err != nil {
		return apperr.Internal("删除播放列表失败", err)
	}
	return nil
}

// 加视频逻辑：1、列表得是自己的 2、视频必须存在 3、重复添加撞
// (playlist_id, video_id)唯一索引，报409
func (s *playlistService) AddVideo(actorID, playlistID, videoID uint64) error {
	if _, err := s.findOwned(actorID, playlistID); err != nil {
		return err
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("视频不存在")
		}
		return apperr.Internal("查询视频失败", err)
	}

	item := &model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID, AddedAt: time.Now()}
	if err := s.playlistRepo.AddVideo(item); err != nil {
		if isDuplicateKey(err) {
			return apperr.Conflict("视频已在播放列表中")
		}
		return apperr.Internal("添加视频失败", err)
	}
	return nil
}

func (s *playlistService) RemoveVideo(actorID, playlistID, videoID uint64) error {
	if _, err := s.findOwned(actorID, playlistID); err != nil {
		return err
	}
	rows, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return apperr.Internal("移除视频失败", err)
	}
	if rows == 0 {
		return apperr.NotFound("播放列表中没有这个视频")
	}
	return nil
}

// findOwned 查列表并校验归属，是所有写操作共用的门禁
func (s *playlistService) findOwned(actorID, playlistID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("播放列表不存在")
		}
		return nil, apperr.Internal("查询播放列表失败", err)
	}
	if playlist.OwnerID != actorID {
		return nil, apperr.Forbidden("没有权限操作别人的播放列表")
	}
	return playlist, nil
}
