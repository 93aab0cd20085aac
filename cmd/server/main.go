package main

import (
	"Nebula_Tube/internal/data"
	"Nebula_Tube/internal/handler"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
	"Nebula_Tube/internal/router"
	"Nebula_Tube/internal/service"
	"Nebula_Tube/pkg/config"
	"Nebula_Tube/pkg/logger"
	"Nebula_Tube/pkg/rabbitmq"
	"Nebula_Tube/pkg/redis"
	"Nebula_Tube/pkg/storage"
	"Nebula_Tube/pkg/token"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// .env是可选的，没有就直接用环境变量/配置文件
	if err := godotenv.Load(); err != nil {
		logrus.Info("未找到.env文件，使用现有环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg.Log.File, cfg.Log.Level)

	rdb, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("连接Redis失败: %v", err)
	}

	mqConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMq.URL)
	if err != nil {
		logger.Log.Fatalf("连接RabbitMQ失败: %v", err)
	}
	defer mqConn.Close()

	producer, err := rabbitmq.NewProducer(mqConn, rabbitmq.ViewQueue)
	if err != nil {
		logger.Log.Fatalf("创建消息生产者失败: %v", err)
	}
	defer producer.Close()

	storageClient, err := storage.InitStorage(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
		cfg.Minio.Bucket, cfg.Minio.PublicURL, cfg.Minio.UseSSL,
	)
	if err != nil {
		logger.Log.Fatalf("连接对象存储失败: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("连接MySQL失败: %v", err)
	}

	// 自动建表/补列，唯一索引也在这里落地
	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Tweet{},
		&model.WatchHistory{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}

	tokenMgr := token.NewManager(cfg.Jwt.AccessSecret, cfg.Jwt.RefreshSecret, cfg.Jwt.AccessTTL, cfg.Jwt.RefreshTTL)

	// repository层
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, rdb)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	uow := data.NewUnitOfWork(db, userRepo, videoRepo, commentRepo, likeRepo,
		subscriptionRepo, playlistRepo, tweetRepo, watchRepo)

	// service层
	userService := service.NewUserService(userRepo, videoRepo, subscriptionRepo, uow, tokenMgr, storageClient)
	videoService := service.NewVideoService(videoRepo, userRepo, uow, storageClient)
	likeService := service.NewLikeService(likeRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, uow)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, uow)
	tweetService := service.NewTweetService(tweetRepo, userRepo, subscriptionRepo, uow)
	watchService := service.NewWatchService(watchRepo, videoRepo, producer, cfg.Watch.RecountWindow)
	dashboardService := service.NewDashboardService(videoRepo, subscriptionRepo, likeRepo, playlistRepo, commentRepo, watchRepo)
	searchService := service.NewSearchService(videoRepo, userRepo)

	// handler层
	handlers := &router.Handlers{
		User:         handler.NewUserHandler(userService, cfg.Upload.TempDir, cfg.Server.CookieSecure, cfg.Jwt.AccessTTL, cfg.Jwt.RefreshTTL),
		Video:        handler.NewVideoHandler(videoService, cfg.Upload.TempDir),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Watch:        handler.NewWatchHandler(watchService),
		Dashboard:    handler.NewDashboardHandler(dashboardService, searchService),
	}

	r := router.Setup(handlers, tokenMgr, userRepo)

	logger.Log.Infof("HTTP服务启动，监听 %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Log.Fatalf("HTTP服务退出: %v", err)
	}
}
