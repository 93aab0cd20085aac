package service

import (
	"strings"
	"unicode/utf8"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
)

// 动态最长280个字符（按rune算，不是字节）
const maxTweetRunes = 280

type TweetService interface {
	Create(ownerID uint64, content string) (*dto.TweetResponse, error)
	// PublicFeed 全站动态，时间倒序分页
	PublicFeed(page, limit int) (*dto.Page, error)
	// FollowingFeed 只看自己订阅的频道发的动态；一个都没订阅时返回空页
	FollowingFeed(userID uint64, page, limit int) (*dto.Page, error)
	UserFeed(username string, page, limit int) (*dto.Page, error)
	Delete(actorID, tweetID uint64) error
}

type tweetService struct {
	tweetRepo        repository.TweetRepository
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	uow              data.UnitOfWork
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	uow data.UnitOfWork,
) TweetService {
	return &tweetService{
		tweetRepo:        tweetRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		uow:              uow,
	}
}

func (s *tweetService) Create(ownerID uint64, content string) (*dto.TweetResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.BadRequest("动态内容不能为空")
	}
	if utf8.RuneCountInString(content) > maxTweetRunes {
		return nil, apperr.BadRequest("动态最多280个字符")
	}

	tweet := &model.Tweet{OwnerID: ownerID, Content: content}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, apperr.Internal("发布动态失败", err)
	}

	created, err := s.tweetRepo.FindByID(tweet.ID)
	if err != nil {
		return nil, apperr.Internal("查询动态失败", err)
	}
	resp := dto.ToTweetResponse(created)
	return &resp, nil
}

func (s *tweetService) PublicFeed(page, limit int) (*dto.Page, error) {
	page, limit, offset := dto.ParsePage(page, limit, 20)
	tweets, total, err := s.tweetRepo.FindPage(offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询动态列表失败", err)
	}
	return dto.NewPage(dto.ToTweetResponses(tweets), page, limit, total), nil
}

func (s *tweetService) FollowingFeed(userID uint64, page, limit int) (*dto.Page, error) {
	channelIDs, err := s.subscriptionRepo.ChannelIDsOf(userID)
	if err != nil {
		return nil, apperr.Internal("查询关注列表失败", err)
	}
	page, limit, offset := dto.ParsePage(page, limit, 20)
	tweets, total, err := s.tweetRepo.FindByOwnersPage(channelIDs, offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询动态列表失败", err)
	}
	return dto.NewPage(dto.ToTweetResponses(tweets), page, limit, total), nil
}

func (s *tweetService) UserFeed(username string, page, limit int) (*dto.Page, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	page, limit, offset := dto.ParsePage(page, limit, 20)
	tweets, total, err := s.tweetRepo.FindByOwnerPage(user.ID, offset, limit)
	if err != nil {
		return nil, apperr.Internal("查询动态列表失败", err)
	}
	return dto.NewPage(dto.ToTweetResponses(tweets), page, limit, total), nil
}

// 删除逻辑：作者本人才能删，动态和指向它的赞在一个事务里一起删
func (s *tweetService) Delete(actorID, tweetID uint64) error {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		if isNotFound(err) {
			return apperr.NotFound("动态不存在")
		}
		return apperr.Internal("查询动态失败", err)
	}
	if tweet.OwnerID != actorID {
		return apperr.Forbidden("没有权限操作别人的动态")
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTargetIDs(model.TargetTweet, []uint64{tweetID}); err != nil {
			return err
		}
		return repos.TweetRepo.Delete(tweetID)
	})
	if err != nil {
		return apperr.Internal("删除动态失败", err)
	}
	return nil
}
