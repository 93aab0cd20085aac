package service

import (
	"strings"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/repository"
)

// 每类结果最多返回20条
const searchLimit = 20

type SearchService interface {
	// Search 同一个关键词同时搜视频（标题/简介）和用户（用户名/昵称），
	// 两组并列返回，不做合并排序
	Search(keyword string) (*dto.SearchResponse, error)
}

type searchService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

func NewSearchService(videoRepo repository.VideoRepository, userRepo repository.UserRepository) SearchService {
	return &searchService{videoRepo: videoRepo, userRepo: userRepo}
}

func (s *searchService) Search(keyword string) (*dto.SearchResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.BadRequest("搜索关键词不能为空")
	}

	videos, err := s.videoRepo.SearchPublished(keyword, searchLimit)
	if err != nil {
		return nil, apperr.Internal("搜索视频失败", err)
	}
	users, err := s.userRepo.SearchByName(keyword, searchLimit)
	if err != nil {
		return nil, apperr.Internal("搜索用户失败", err)
	}

	userCards := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		userCards = append(userCards, dto.ToUserInfo(&users[i]))
	}
	return &dto.SearchResponse{
		Videos: dto.ToVideoResponses(videos),
		Users:  userCards,
	}, nil
}
