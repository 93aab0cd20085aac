package data

import (
	"Nebula_Tube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// 它会为这个函数提供能在事务中工作的 Repositories。
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
// 评论级联删除、注销账号的级联清理都要靠它保证"一荣俱荣，一损俱损"
type TransactionalRepositories struct {
	UserRepo         repository.UserRepository
	VideoRepo        repository.VideoRepository
	CommentRepo      repository.CommentRepository
	LikeRepo         repository.LikeRepository
	SubscriptionRepo repository.SubscriptionRepository
	PlaylistRepo     repository.PlaylistRepository
	TweetRepo        repository.TweetRepository
	WatchRepo        repository.WatchRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db               *gorm.DB
	userRepo         repository.UserRepository
	videoRepo        repository.VideoRepository
	commentRepo      repository.CommentRepository
	likeRepo         repository.LikeRepository
	subscriptionRepo repository.SubscriptionRepository
	playlistRepo     repository.PlaylistRepository
	tweetRepo        repository.TweetRepository
	watchRepo        repository.WatchRepository
}

// NewUnitOfWork 创建一个新的、基于GORM的"工作单元"。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(
	db *gorm.DB,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	subscriptionRepo repository.SubscriptionRepository,
	playlistRepo repository.PlaylistRepository,
	tweetRepo repository.TweetRepository,
	watchRepo repository.WatchRepository,
) UnitOfWork {
	return &gormUnitOfWork{
		db:               db,
		userRepo:         userRepo,
		videoRepo:        videoRepo,
		commentRepo:      commentRepo,
		likeRepo:         likeRepo,
		subscriptionRepo: subscriptionRepo,
		playlistRepo:     playlistRepo,
		tweetRepo:        tweetRepo,
		watchRepo:        watchRepo,
	}
}

// Execute 把业务函数包进db.Transaction：返回error则回滚，返回nil则提交
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		// 临时创建"一次性"的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			UserRepo:         u.userRepo.WithTx(tx),
			VideoRepo:        u.videoRepo.WithTx(tx),
			CommentRepo:      u.commentRepo.WithTx(tx),
			LikeRepo:         u.likeRepo.WithTx(tx),
			SubscriptionRepo: u.subscriptionRepo.WithTx(tx),
			PlaylistRepo:     u.playlistRepo.WithTx(tx),
			TweetRepo:        u.tweetRepo.WithTx(tx),
			WatchRepo:        u.watchRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
