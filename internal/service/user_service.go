package service

import (
	"context"
	"os"
	"regexp"
	"unicode"
	"unicode/utf8"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/logger"
	"Nebula_Tube/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegexp    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// 头像/封面只收这三种格式
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// TokenPair 登录/刷新成功后发给客户端的一对令牌
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserService interface {
	// Register 注册；头像必填，封面可选（coverPath为空表示没传）
	Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, avatarType, coverPath, coverType string) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.UserResponse, *TokenPair, error)
	// RefreshTokens 校验刷新令牌并与落库的那一份比对，通过后轮换出一对新令牌
	RefreshTokens(refreshToken string) (*TokenPair, error)
	Logout(userID uint64) error
	GetCurrentUser(userID uint64) (*dto.UserResponse, error)
	ResetPassword(userID uint64, oldPassword, newPassword string) error
	UpdateAccount(userID uint64, req *dto.UpdateAccountRequest) (*dto.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID uint64, localPath, contentType string) (*dto.UserResponse, error)
	UpdateCoverImage(ctx context.Context, userID uint64, localPath, contentType string) (*dto.UserResponse, error)
	// GetChannelProfile 频道主页；viewerID为0表示匿名访问，isSubscribed恒为false
	GetChannelProfile(username string, viewerID uint64) (*dto.ChannelProfileResponse, error)
	// DeleteAccount 注销账号：本人产生的和指向本人内容的数据在一个事务里全部清掉
	DeleteAccount(userID uint64) error
}

type userService struct {
	userRepo         repository.UserRepository
	videoRepo        repository.VideoRepository
	subscriptionRepo repository.SubscriptionRepository
	uow              data.UnitOfWork
	tokenMgr         *token.Manager
	storage          ObjectStorage
}

func NewUserService(
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	subscriptionRepo repository.SubscriptionRepository,
	uow data.UnitOfWork,
	tokenMgr *token.Manager,
	storageClient ObjectStorage,
) UserService {
	return &userService{
		userRepo:         userRepo,
		videoRepo:        videoRepo,
		subscriptionRepo: subscriptionRepo,
		uow:              uow,
		tokenMgr:         tokenMgr,
		storage:          storageClient,
	}
}

// 注册逻辑：1、逐项校验字段 2、查重 3、头像（和可选的封面）传到对象存储
// 4、密码哈希后落库。查重和落库之间有并发窗口，靠username/email的唯一索引兜底
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, avatarType, coverPath, coverType string) (*dto.UserResponse, error) {
	cleanup := func() {
		removeTemp(avatarPath)
		removeTemp(coverPath)
	}

	if err := validateRegister(req); err != nil {
		cleanup()
		return nil, err
	}
	if avatarPath == "" {
		removeTemp(coverPath)
		return nil, apperr.BadRequest("头像不能为空")
	}
	if !allowedImageTypes[avatarType] {
		cleanup()
		return nil, apperr.BadRequest("头像格式仅支持 jpeg/png/webp")
	}
	if coverPath != "" && !allowedImageTypes[coverType] {
		cleanup()
		return nil, apperr.BadRequest("封面格式仅支持 jpeg/png/webp")
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		cleanup()
		return nil, apperr.Internal("注册查重失败", err)
	}
	if exists {
		cleanup()
		return nil, apperr.Conflict("用户名或邮箱已被注册")
	}

	// UploadLocalFile成败都会清掉自己的临时文件，后面不用再removeTemp
	avatarURL, avatarObject, err := s.storage.UploadLocalFile(ctx, avatarPath, "avatars", avatarType)
	if err != nil {
		removeTemp(coverPath)
		return nil, apperr.Internal("头像上传失败", err)
	}

	coverURL := ""
	if coverPath != "" {
		coverURL, _, err = s.storage.UploadLocalFile(ctx, coverPath, "covers", coverType)
		if err != nil {
			// 封面传失败要把已传的头像删掉，不留孤儿对象
			s.storage.RemoveObject(ctx, avatarObject)
			return nil, apperr.Internal("封面上传失败", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("密码加密失败", err)
	}

	user := &model.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		FullName:   req.FullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isDuplicateKey(err) {
			// 查重之后别人抢先注册了同名账号
			return nil, apperr.Conflict("用户名或邮箱已被注册")
		}
		return nil, apperr.Internal("创建用户失败", err)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// 登录逻辑：1、用户名/邮箱任一种都能登 2、账号不存在和密码错误分开报
// 3、签发一对令牌，refresh落库——同一时间只有最后一次登录的refresh有效
func (s *userService) Login(req *dto.LoginRequest) (*dto.UserResponse, *TokenPair, error) {
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		return nil, nil, apperr.BadRequest("用户名或邮箱不能为空")
	}

	user, err := s.userRepo.FindByUsernameOrEmail(identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, apperr.NotFound("用户不存在")
		}
		return nil, nil, apperr.Internal("查询用户失败", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, nil, apperr.BadRequest("密码错误")
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	resp := dto.ToUserResponse(user)
	return &resp, pair, nil
}

// issueTokens 签发access/refresh并把refresh写回用户记录
func (s *userService) issueTokens(userID uint64) (*TokenPair, error) {
	accessToken, err := s.tokenMgr.NewAccessToken(userID)
	if err != nil {
		return nil, apperr.Internal("签发访问令牌失败", err)
	}
	refreshToken, err := s.tokenMgr.NewRefreshToken(userID)
	if err != nil {
		return nil, apperr.Internal("签发刷新令牌失败", err)
	}
	if err := s.userRepo.UpdateRefreshToken(userID, refreshToken); err != nil {
		return nil, apperr.Internal("保存刷新令牌失败", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// 刷新逻辑：1、校验签名和过期 2、和库里存的那一份比对——轮换过的旧令牌在这里被拦下
// 3、签发新的一对并覆盖落库（轮换）
func (s *userService) RefreshTokens(refreshToken string) (*TokenPair, error) {
	userID, err := s.tokenMgr.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("无效或过期的刷新令牌")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized("无效或过期的刷新令牌")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		// 签名有效但不是当前那一份：可能是轮换后被重放的旧令牌
		return nil, apperr.Unauthorized("刷新令牌已失效，请重新登录")
	}

	return s.issueTokens(userID)
}

func (s *userService) Logout(userID uint64) error {
	if err := s.userRepo.UpdateRefreshToken(userID, ""); err != nil {
		return apperr.Internal("注销登录失败", err)
	}
	return nil
}

func (s *userService) GetCurrentUser(userID uint64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userService) ResetPassword(userID uint64, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return apperr.NotFound("用户不存在")
		}
		return apperr.Internal("查询用户失败", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperr.BadRequest("旧密码错误")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("密码加密失败", err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return apperr.Internal("修改密码失败", err)
	}
	return nil
}

// 部分更新：提供哪个字段就更新哪个，但不能什么都不提供
func (s *userService) UpdateAccount(userID uint64, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	if req.FullName == "" && req.Email == "" {
		return nil, apperr.BadRequest("至少提供一个要更新的字段")
	}

	fields := make(map[string]interface{}, 2)
	if req.FullName != "" {
		if utf8.RuneCountInString(req.FullName) < 3 {
			return nil, apperr.BadRequest("昵称长度至少3个字符")
		}
		fields["full_name"] = req.FullName
	}
	if req.Email != "" {
		if !emailRegexp.MatchString(req.Email) {
			return nil, apperr.BadRequest("邮箱格式不正确")
		}
		taken, err := s.userRepo.ExistsEmailExcept(req.Email, userID)
		if err != nil {
			return nil, apperr.Internal("邮箱查重失败", err)
		}
		if taken {
			return nil, apperr.Conflict("邮箱已被其他账号使用")
		}
		fields["email"] = req.Email
	}

	if err := s.userRepo.UpdateFields(userID, fields); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Conflict("邮箱已被其他账号使用")
		}
		return nil, apperr.Internal("更新资料失败", err)
	}
	return s.GetCurrentUser(userID)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, localPath, contentType string) (*dto.UserResponse, error) {
	return s.updateImage(ctx, userID, localPath, contentType, "avatar", "avatars")
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID uint64, localPath, contentType string) (*dto.UserResponse, error) {
	return s.updateImage(ctx, userID, localPath, contentType, "cover_image", "covers")
}

// 头像和封面走同一条路：校验格式 → 上传 → 更新对应列
func (s *userService) updateImage(ctx context.Context, userID uint64, localPath, contentType, column, folder string) (*dto.UserResponse, error) {
	if localPath == "" {
		return nil, apperr.BadRequest("图片文件不能为空")
	}
	if !allowedImageTypes[contentType] {
		removeTemp(localPath)
		return nil, apperr.BadRequest("图片格式仅支持 jpeg/png/webp")
	}
	url, _, err := s.storage.UploadLocalFile(ctx, localPath, folder, contentType)
	if err != nil {
		return nil, apperr.Internal("图片上传失败", err)
	}
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{column: url}); err != nil {
		return nil, apperr.Internal("更新资料失败", err)
	}
	return s.GetCurrentUser(userID)
}

func (s *userService) GetChannelProfile(username string, viewerID uint64) (*dto.ChannelProfileResponse, error) {
	channel, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("频道不存在")
		}
		return nil, apperr.Internal("查询频道失败", err)
	}

	subscriberCount, err := s.subscriptionRepo.CountSubscribers(channel.ID)
	if err != nil {
		return nil, apperr.Internal("统计粉丝数失败", err)
	}
	subscribedToCount, err := s.subscriptionRepo.CountSubscribedTo(channel.ID)
	if err != nil {
		return nil, apperr.Internal("统计关注数失败", err)
	}
	videoCount, err := s.videoRepo.CountByOwner(channel.ID)
	if err != nil {
		return nil, apperr.Internal("统计视频数失败", err)
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != channel.ID {
		isSubscribed, err = s.subscriptionRepo.Exists(viewerID, channel.ID)
		if err != nil {
			return nil, apperr.Internal("查询订阅状态失败", err)
		}
	}

	return &dto.ChannelProfileResponse{
		Channel:           dto.ToUserResponse(channel),
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
		VideoCount:        videoCount,
	}, nil
}

// 注销逻辑：一个事务里按依赖顺序清干净——
// 1、别人指向我的内容的数据（视频下的评论/赞、播放列表引用、观看历史）
// 2、我自己产生的数据（视频、评论、赞、订阅、播放列表、动态、历史）
// 3、用户本体。任何一步失败整体回滚
func (s *userService) DeleteAccount(userID uint64) error {
	var videoIDs []uint64

	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		var err error
		videoIDs, err = repos.VideoRepo.IDsByOwner(userID)
		if err != nil {
			return err
		}
		tweetIDs, err := repos.TweetRepo.IDsByOwner(userID)
		if err != nil {
			return err
		}
		playlistIDs, err := repos.PlaylistRepo.IDsByOwner(userID)
		if err != nil {
			return err
		}

		// 指向我的视频/动态的赞和评论不能留悬挂数据
		if err := repos.LikeRepo.DeleteByTargetIDs(model.TargetVideo, videoIDs); err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByTargetIDs(model.TargetTweet, tweetIDs); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.DeleteVideoRefs(videoIDs); err != nil {
			return err
		}
		if err := repos.WatchRepo.DeleteByVideoIDs(videoIDs); err != nil {
			return err
		}

		if err := repos.VideoRepo.DeleteByOwner(userID); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByOwner(userID); err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByUser(userID); err != nil {
			return err
		}
		if err := repos.SubscriptionRepo.DeleteByUser(userID); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.DeleteVideosOfPlaylists(playlistIDs); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.DeleteByOwner(userID); err != nil {
			return err
		}
		if err := repos.TweetRepo.DeleteByOwner(userID); err != nil {
			return err
		}
		if err := repos.WatchRepo.DeleteAllByUser(userID); err != nil {
			return err
		}
		return repos.UserRepo.Delete(userID)
	})
	if err != nil {
		return apperr.Internal("注销账号失败", err)
	}

	// 事务提交后再清缓存，清失败只影响5分钟内的缓存命中
	for _, videoID := range videoIDs {
		if err := s.videoRepo.DelVideoCache(videoID); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("清理视频缓存失败")
		}
	}
	return nil
}

func validateRegister(req *dto.RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		return apperr.BadRequest("用户名、邮箱、密码、昵称均不能为空")
	}
	if !usernameRegexp.MatchString(req.Username) {
		return apperr.BadRequest("用户名只能包含3-20位字母、数字或下划线")
	}
	if !emailRegexp.MatchString(req.Email) {
		return apperr.BadRequest("邮箱格式不正确")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if utf8.RuneCountInString(req.FullName) < 3 {
		return apperr.BadRequest("昵称长度至少3个字符")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return apperr.BadRequest("密码长度至少6位")
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperr.BadRequest("密码必须同时包含字母和数字")
	}
	return nil
}

// removeTemp 校验不通过时主动清掉handler落盘的临时文件
func removeTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Log.WithError(err).WithField("path", path).Warn("临时文件清理失败")
	}
}
