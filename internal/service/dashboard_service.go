package service

import (
	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

// 最近动态每类取5条
const recentLimit = 5

type DashboardService interface {
	// Stats 创作者仪表盘：各项计数 + 最近动态。
	// 所有查询互相独立、不开事务，接受瞬时的不一致
	Stats(userID uint64) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	videoRepo        repository.VideoRepository
	subscriptionRepo repository.SubscriptionRepository
	likeRepo         repository.LikeRepository
	playlistRepo     repository.PlaylistRepository
	commentRepo      repository.CommentRepository
	watchRepo        repository.WatchRepository
}

func NewDashboardService(
	videoRepo repository.VideoRepository,
	subscriptionRepo repository.SubscriptionRepository,
	likeRepo repository.LikeRepository,
	playlistRepo repository.PlaylistRepository,
	commentRepo repository.CommentRepository,
	watchRepo repository.WatchRepository,
) DashboardService {
	return &dashboardService{
		videoRepo:        videoRepo,
		subscriptionRepo: subscriptionRepo,
		likeRepo:         likeRepo,
		playlistRepo:     playlistRepo,
		commentRepo:      commentRepo,
		watchRepo:        watchRepo,
	}
}

func (s *dashboardService) Stats(userID uint64) (*dto.DashboardResponse, error) {
	videoCount, err := s.videoRepo.CountByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("统计视频数失败", err)
	}
	subscriberCount, err := s.subscriptionRepo.CountSubscribers(userID)
	if err != nil {
		return nil, apperr.Internal("统计粉丝数失败", err)
	}
	subscribedToCount, err := s.subscriptionRepo.CountSubscribedTo(userID)
	if err != nil {
		return nil, apperr.Internal("统计关注数失败", err)
	}

	videoIDs, err := s.videoRepo.IDsByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("查询视频列表失败", err)
	}
	likesReceived, err := s.likeRepo.CountByTargetIDs(model.TargetVideo, videoIDs)
	if err != nil {
		return nil, apperr.Internal("统计获赞数失败", err)
	}

	playlistCount, err := s.playlistRepo.CountByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("统计播放列表数失败", err)
	}
	totalViews, err := s.videoRepo.SumViewsByOwner(userID)
	if err != nil {
		return nil, apperr.Internal("统计播放量失败", err)
	}

	recentUploads, err := s.videoRepo.FindRecentByOwner(userID, recentLimit)
	if err != nil {
		return nil, apperr.Internal("查询最近投稿失败", err)
	}
	recentComments, err := s.commentRepo.FindRecentByOwner(userID, recentLimit)
	if err != nil {
		return nil, apperr.Internal("查询最近评论失败", err)
	}
	commentIDs := make([]uint64, 0, len(recentComments))
	for i := range recentComments {
		commentIDs = append(commentIDs, recentComments[i].ID)
	}
	replyCounts, err := s.commentRepo.CountRepliesByParentIDs(commentIDs)
	if err != nil {
		return nil, apperr.Internal("统计回复数失败", err)
	}
	recentWatched, err := s.watchRepo.FindRecent(userID, recentLimit)
	if err != nil {
		return nil, apperr.Internal("查询最近观看失败", err)
	}

	return &dto.DashboardResponse{
		Totals: dto.DashboardTotals{
			Videos:        videoCount,
			Subscribers:   subscriberCount,
			SubscribedTo:  subscribedToCount,
			LikesReceived: likesReceived,
			Playlists:     playlistCount,
			TotalViews:    totalViews,
		},
		Recent: dto.DashboardRecent{
			Uploads:  dto.ToVideoResponses(recentUploads),
			Comments: dto.ToCommentResponses(recentComments, replyCounts),
			Watched:  dto.ToWatchHistoryItems(recentWatched),
		},
	}, nil
}
