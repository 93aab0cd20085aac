package service

import (
	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

type LikeService interface {
	// Toggle 有则删、无则插，返回操作后的状态和最新计数
	Toggle(userID, targetID uint64, targetType model.TargetType) (*dto.LikeStatus, error)
	Status(userID, targetID uint64, targetType model.TargetType) (*dto.LikeStatus, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
}

func NewLikeService(likeRepo repository.LikeRepository) LikeService {
	return &likeService{likeRepo: likeRepo}
}

// 点赞toggle逻辑：1、查当前状态 2、有则删无则插 3、并发下两边都想插时，
// 后到的那个撞1062——这不是错误，是"已经点上了"，按点赞成功返回，绝不500
func (s *likeService) Toggle(userID, targetID uint64, targetType model.TargetType) (*dto.LikeStatus, error) {
	if !targetType.IsValid() {
		return nil, apperr.BadRequest("不支持的点赞目标类型")
	}

	existing, err := s.likeRepo.Find(userID, targetID, targetType)
	if err != nil && !isNotFound(err) {
		return nil, apperr.Internal("查询点赞状态失败", err)
	}

	var isLiked bool
	if existing != nil {
		if err := s.likeRepo.DeleteByID(existing.ID); err != nil {
			return nil, apperr.Internal("取消点赞失败", err)
		}
		isLiked = false
	} else {
		like := &model.Like{LikedByID: userID, TargetID: targetID, TargetType: targetType}
		err := s.likeRepo.Create(like)
		switch {
		case err == nil:
			isLiked = true
		case isDuplicateKey(err):
			// 并发重复点赞，另一个请求抢先插入了，状态就是"已点赞"
			isLiked = true
		default:
			return nil, apperr.Internal("点赞失败", err)
		}
	}

	count, err := s.likeRepo.Count(targetID, targetType)
	if err != nil {
		return nil, apperr.Internal("统计点赞数失败", err)
	}
	return &dto.LikeStatus{IsLiked: isLiked, LikeCount: count}, nil
}

func (s *likeService) Status(userID, targetID uint64, targetType model.TargetType) (*dto.LikeStatus, error) {
	if !targetType.IsValid() {
		return nil, apperr.BadRequest("不支持的点赞目标类型")
	}
	isLiked := false
	if userID != 0 {
		var err error
		isLiked, err = s.likeRepo.Exists(userID, targetID, targetType)
		if err != nil {
			return nil, apperr.Internal("查询点赞状态失败", err)
		}
	}
	count, err := s.likeRepo.Count(targetID, targetType)
	if err != nil {
		return nil, apperr.Internal("统计点赞数失败", err)
	}
	return &dto.LikeStatus{IsLiked: isLiked, LikeCount: count}, nil
}
