package main

import (
	"fmt"
	"math/rand"
	"time"

	"Nebula_Tube/internal/model"
	"Nebula_Tube/pkg/config"
	"Nebula_Tube/pkg/logger"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	seedUsers          = 20
	seedVideosPerUser  = 3
	seedTweetsPerUser  = 2
	seedSubsPerUser    = 5
	seedDefaultPass    = "test1234"
	placeholderBaseURL = "https://picsum.photos/seed"
)

// 演示数据填充器：造一批用户、视频、动态和订阅关系，方便本地联调
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("未找到.env文件，使用现有环境变量")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg.Log.File, cfg.Log.Level)

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("连接MySQL失败: %v", err)
	}

	// 所有演示账号共用同一个密码，哈希一次就够了
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedDefaultPass), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatalf("密码加密失败: %v", err)
	}

	users := make([]*model.User, 0, seedUsers)
	for i := 0; i < seedUsers; i++ {
		user := &model.User{
			Username: fmt.Sprintf("demo_%s%d", faker.Username(), i),
			Email:    fmt.Sprintf("demo%d_%s", i, faker.Email()),
			Password: string(hashed),
			FullName: faker.Name(),
			Avatar:   fmt.Sprintf("%s/avatar%d/200/200", placeholderBaseURL, i),
		}
		if err := db.Create(user).Error; err != nil {
			logger.Log.WithError(err).Warn("创建演示用户失败，跳过")
			continue
		}
		users = append(users, user)
	}
	logger.Log.Infof("已创建 %d 个演示用户（密码统一为 %s）", len(users), seedDefaultPass)

	videoCount := 0
	for _, user := range users {
		for j := 0; j < seedVideosPerUser; j++ {
			video := &model.Video{
				OwnerID:     user.ID,
				Title:       faker.Sentence(),
				Description: faker.Paragraph(),
				Duration:    float64(rand.Intn(1800) + 30),
				Views:       uint64(rand.Intn(10000)),
				IsPublished: true,
				VideoFile:   fmt.Sprintf("%s/video%d_%d/640/360", placeholderBaseURL, user.ID, j),
				Thumbnail:   fmt.Sprintf("%s/thumb%d_%d/320/180", placeholderBaseURL, user.ID, j),
			}
			if err := db.Create(video).Error; err != nil {
				logger.Log.WithError(err).Warn("创建演示视频失败，跳过")
				continue
			}
			videoCount++
		}
	}
	logger.Log.Infof("已创建 %d 个演示视频", videoCount)

	tweetCount := 0
	for _, user := range users {
		for j := 0; j < seedTweetsPerUser; j++ {
			tweet := &model.Tweet{OwnerID: user.ID, Content: faker.Sentence()}
			if err := db.Create(tweet).Error; err != nil {
				logger.Log.WithError(err).Warn("创建演示动态失败，跳过")
				continue
			}
			tweetCount++
		}
	}
	logger.Log.Infof("已创建 %d 条演示动态", tweetCount)

	subCount := 0
	for _, user := range users {
		for j := 0; j < seedSubsPerUser; j++ {
			channel := users[rand.Intn(len(users))]
			if channel.ID == user.ID {
				continue
			}
			sub := &model.Subscription{SubscriberID: user.ID, ChannelID: channel.ID}
			// 随机抽到重复的订阅会撞唯一索引，跳过就行
			if err := db.Create(sub).Error; err != nil {
				continue
			}
			subCount++
		}
	}
	logger.Log.Infof("已创建 %d 条演示订阅关系", subCount)

	watchCount := 0
	var videos []model.Video
	if err := db.Limit(100).Find(&videos).Error; err == nil && len(videos) > 0 {
		for _, user := range users {
			video := videos[rand.Intn(len(videos))]
			entry := &model.WatchHistory{
				UserID:    user.ID,
				VideoID:   video.ID,
				WatchedAt: time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
			}
			if err := db.Create(entry).Error; err != nil {
				continue
			}
			watchCount++
		}
	}
	logger.Log.Infof("已创建 %d 条演示观看记录，数据填充完成", watchCount)
}
