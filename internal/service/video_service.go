package service

import (
	"context"
	"fmt"
	"strings"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/logger"

	"golang.org/x/sync/singleflight"
)

type VideoService interface {
	Upload(ctx context.Context, ownerID uint64, req *dto.UploadVideoRequest, videoPath, videoType, thumbPath, thumbType string) (*dto.VideoResponse, error)
	// GetByID 详情页，读最重的一条路径：Redis缓存 + singleflight合并回源
	GetByID(videoID uint64) (*dto.VideoResponse, error)
	GetFeedPage(page, limit int) (*dto.Page, error)
	GetUserPage(username string, page, limit int) (*dto.Page, error)
	Update(ctx context.Context, actorID, videoID uint64, req *dto.UpdateVideoRequest, thumbPath, thumbType string) (*dto.VideoResponse, error)
	// Delete 连同视频下的评论、赞、播放列表引用、观看历史一起删
	Delete(actorID, videoID uint64) error
}

type videoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uow       data.UnitOfWork
	storage   ObjectStorage
	sf        singleflight.Group
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	uow data.UnitOfWork,
	storageClient ObjectStorage,
) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		uow:       uow,
		storage:   storageClient,
	}
}

// 投稿逻辑：1、校验标题/时长/两个文件 2、视频和封面先后传到对象存储
// 3、封面传失败要把已传的视频删掉，不留孤儿对象 4、落库，默认直接发布
func (s *videoService) Upload(ctx context.Context, ownerID uint64, req *dto.UploadVideoRequest, videoPath, videoType, thumbPath, thumbType string) (*dto.VideoResponse, error) {
	if req.Title == "" {
		removeTemp(videoPath)
		removeTemp(thumbPath)
		return nil, apperr.BadRequest("标题不能为空")
	}
	if req.Duration <= 0 {
		removeTemp(videoPath)
		removeTemp(thumbPath)
		return nil, apperr.BadRequest("时长必须是正数")
	}
	if videoPath == "" || thumbPath == "" {
		removeTemp(videoPath)
		removeTemp(thumbPath)
		return nil, apperr.BadRequest("视频文件和封面均不能为空")
	}
	if !strings.HasPrefix(videoType, "video/") {
		removeTemp(videoPath)
		removeTemp(thumbPath)
		return nil, apperr.BadRequest("视频文件格式不正确")
	}
	if !allowedImageTypes[thumbType] {
		removeTemp(videoPath)
		removeTemp(thumbPath)
		return nil, apperr.BadRequest("封面格式仅支持 jpeg/png/webp")
	}

	videoURL, videoObject, err := s.storage.UploadLocalFile(ctx, videoPath, "videos", videoType)
	if err != nil {
		removeTemp(thumbPath)
		return nil, apperr.Internal("视频上传失败", err)
	}

	thumbURL, _, err := s.storage.UploadLocalFile(ctx, thumbPath, "thumbnails", thumbType)
	if err != nil {
		s.storage.RemoveObject(ctx, videoObject)
		return nil, apperr.Internal("封面上传失败", err)
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		VideoFile:   videoURL,
		Thumbnail:   thumbURL,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		s.storage.RemoveObject(ctx, videoObject)
		return nil, apperr.Internal("保存视频失败", err)
	}

	// 重查一次把Owner带出来
	created, err := s.videoRepo.FindByID(video.ID)
	if err != nil {
		return nil, apperr.Internal("查询视频失败", err)
	}
	resp := dto.ToVideoResponse(created)
	return &resp, nil
}

// 详情逻辑：1、先查缓存，Redis出错按缓存未命中处理 2、未命中时singleflight
// 合并并发回源，防止热点视频把数据库打穿 3、回源结果写回缓存
func (s *videoService) GetByID(videoID uint64) (*dto.VideoResponse, error) {
	cached, err := s.videoRepo.GetVideoCache(videoID)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败，回源数据库")
	}
	if cached != nil {
		resp := dto.ToVideoResponse(cached)
		return &resp, nil
	}

	result, err, _ := s.sf.Do(fmt.Sprintf("video:%d", videoID), func() (interface{}, error) {
		video, err := s.videoRepo.FindByID(videoID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperr.NotFound("视频不存在")
			}
			return nil, apperr.Internal("查询视频失败", err)
		}
		if err := s.videoRepo.SetVideoCache(video); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return video, nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.ToVideoResponse(result.(*model.Video))
	return &resp, nil
}

func (s *videoService) GetFeedPage(page, limit int) (*dto.Page, error) {
	page, limit, offset := dto.ParsePage(page, limit, 10)
	videos, total, err := s.videoRepo.FindPublishedPage(offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询视频列表失败", err)
	}
	return dto.NewPage(dto.ToVideoResponses(videos), page, limit, total), nil
}

func (s *videoService) GetUserPage(username string, page, limit int) (*dto.Page, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	page, limit, offset := dto.ParsePage(page, limit, 10)
	videos, total, err := s.videoRepo.FindByOwnerPage(user.ID, offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询视频列表失败", err)
	}
	return dto.NewPage(dto.ToVideoResponses(videos), page, limit, total), nil
}

// 更新逻辑：1、只有作者本人能改 2、标题/简介/封面至少改一样
// 3、改完清缓存，避免详情页读到旧数据
func (s *videoService) Update(ctx context.Context, actorID, videoID uint64, req *dto.UpdateVideoRequest, thumbPath, thumbType string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		removeTemp(thumbPath)
		if isNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}
	if video.OwnerID != actorID {
		removeTemp(thumbPath)
		return nil, apperr.Forbidden("没有权限操作别人的视频")
	}

	fields := make(map[string]interface{}, 3)
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if thumbPath != "" {
		if !allowedImageTypes[thumbType] {
			removeTemp(thumbPath)
			return nil, apperr.BadRequest("封面格式仅支持 jpeg/png/webp")
		}
		thumbURL, _, err := s.storage.UploadLocalFile(ctx, thumbPath, "thumbnails", thumbType)
		if err != nil {
			return nil, apperr.Internal("封面上传失败", err)
		}
		fields["thumbnail"] = thumbURL
	}
	if len(fields) == 0 {
		return nil, apperr.BadRequest("至少提供一个要更新的字段")
	}

	if err := s.videoRepo.UpdateFields(videoID, fields); err != nil {
		return nil, apperr.Internal("更新视频失败", err)
	}
	if err := s.videoRepo.DelVideoCache(videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("清理视频缓存失败")
	}

	updated, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, apperr.Internal("查询视频失败", err)
	}
	resp := dto.ToVideoResponse(updated)
	return &resp, nil
}

// 删除逻辑：作者本人才能删；视频本体和它的评论、赞、播放列表引用、
// 观看历史在一个事务里一起消失
func (s *videoService) Delete(actorID, videoID uint64) error {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if isNotFound(err) {
			return apperr.NotFound("视频不存在")
		}
		return apperr.Internal("查询视频失败", err)
	}
	if video.OwnerID != actorID {
		return apperr.Forbidden("没有权限操作别人的视频")
	}

	ids := []uint64{videoID}
	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTargetIDs(model.TargetVideo, ids); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByVideoIDs(ids); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.DeleteVideoRefs(ids); err != nil {
			return err
		}
		if err := repos.WatchRepo.DeleteByVideoIDs(ids); err != nil {
			return err
		}
		return repos.VideoRepo.Delete(videoID)
	})
	if err != nil {
		return apperr.Internal("删除视频失败", err)
	}

	if err := s.videoRepo.DelVideoCache(videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("清理视频缓存失败")
	}
	return nil
}
