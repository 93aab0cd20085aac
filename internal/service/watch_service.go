package service

import (
	"time"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/logger"
	"Nebula_Tube/pkg/rabbitmq"
)

// ViewPublisher 把观看事件投进消息队列，*rabbitmq.Producer实现了它
type ViewPublisher interface {
	Publish(message interface{}) error
}

type WatchService interface {
	// Watch 记一次观看：历史条目按(user, video)去重，只刷新观看时间；
	// 距上次观看超过重计窗口才算一次新播放，事件交给队列异步加数
	Watch(userID, videoID uint64) (*dto.VideoResponse, error)
	History(userID uint64, page, limit int) (*dto.Page, error)
	DeleteOne(userID, videoID uint64) error
	DeleteAll(userID uint64) error
}

type watchService struct {
	watchRepo     repository.WatchRepository
	videoRepo     repository.VideoRepository
	publisher     ViewPublisher
	recountWindow time.Duration
}

func NewWatchService(
	watchRepo repository.WatchRepository,
	videoRepo repository.VideoRepository,
	publisher ViewPublisher,
	recountWindow time.Duration,
) WatchService {
	return &watchService{
		watchRepo:     watchRepo,
		videoRepo:     videoRepo,
		publisher:     publisher,
		recountWindow: recountWindow,
	}
}

// 观看逻辑：1、视频必须存在 2、没看过就插条历史并计一次播放；看过的话
// 只刷新观看时间，距上次超过重计窗口才再计一次 3、播放量走MQ异步落库，
// 投递失败只记日志——计数是尽力而为，不能拖垮观看主流程
func (s *watchService) Watch(userID, videoID uint64) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}

	now := time.Now()
	shouldCount := false

	entry, err := s.watchRepo.Find(userID, videoID)
	switch {
	case err == nil:
		// 看过：超过窗口才重新计数
		shouldCount = now.Sub(entry.WatchedAt) >= s.recountWindow
		if err := s.watchRepo.TouchWatchedAt(entry.ID, now); err != nil {
			return nil, apperr.Internal("更新观看历史失败", err)
		}
	case isNotFound(err):
		createErr := s.watchRepo.Create(&model.WatchHistory{
			UserID:    userID,
			VideoID:   videoID,
			WatchedAt: now,
		})
		switch {
		case createErr == nil:
			shouldCount = true
		case isDuplicateKey(createErr):
			// 并发首次观看：另一个请求抢先插入并计了数，这边只补个时间戳
			if racing, findErr := s.watchRepo.Find(userID, videoID); findErr == nil {
				if touchErr := s.watchRepo.TouchWatchedAt(racing.ID, now); touchErr != nil {
					return nil, apperr.Internal("更新观看历史失败", touchErr)
				}
			}
		default:
			return nil, apperr.Internal("记录观看历史失败", createErr)
		}
	default:
		return nil, apperr.Internal("查询观看历史失败", err)
	}

	if shouldCount {
		event := rabbitmq.ViewEvent{VideoID: videoID}
		if err := s.publisher.Publish(event); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("观看事件投递失败")
		} else {
			// 响应里乐观地带上这一次播放
			video.Views++
		}
	}

	resp := dto.ToVideoResponse(video)
	return &resp, nil
}

func (s *watchService) History(userID uint64, page, limit int) (*dto.Page, error) {
	page, limit, offset := dto.ParsePage(page, limit, 10)
	entries, total, err := s.watchRepo.FindPage(userID, offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询观看历史失败", err)
	}
	return dto.NewPage(dto.ToWatchHistoryItems(entries), page, limit, total), nil
}

func (s *watchService) DeleteOne(userID, videoID uint64) error {
	rows, err := s.watchRepo.DeleteOne(userID, videoID)
	if err != nil {
		return apperr.Internal("删除观看记录失败", err)
	}
	if rows == 0 {
		return apperr.NotFound("观看历史里没有这个视频")
	}
	return nil
}

func (s *watchService) DeleteAll(userID uint64) error {
	if err := s.watchRepo.DeleteAllByUser(userID); err != nil {
		return apperr.Internal("清空观看历史失败", err)
	}
	return nil
}
