package main

import (
	"encoding/json"

	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/config"
	"Nebula_Tube/pkg/logger"
	"Nebula_Tube/pkg/rabbitmq"
	"Nebula_Tube/pkg/redis"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 播放量消费者：从队列里取观看事件，把views原子加一落库。
// 和HTTP进程分开部署，观看高峰时事件在队列里排队，数据库压力是平的
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

	rdb, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("连接Redis失败: %v", err)
	}

	videoRepo := repository.NewVideoRepository(db, rdb)

	mqConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMq.URL)
	if err != nil {
		logger.Log.Fatalf("连接RabbitMQ失败: %v", err)
	}
	defer mqConn.Close()

	ch, err := mqConn.Channel()
	if err != nil {
		logger.Log.Fatalf("打开channel失败: %v", err)
	}
	defer ch.Close()

	// 和生产者用同样的参数声明，先起哪边都行
	if _, err := ch.QueueDeclare(rabbitmq.ViewQueue, true, false, false, false, nil); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}

	// 手动Ack：落库成功才确认，消费者挂了消息会重新投递
	msgs, err := ch.Consume(rabbitmq.ViewQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Log.Fatalf("订阅队列失败: %v", err)
	}

	logger.Log.Infof("播放量消费者启动，监听队列 %s", rabbitmq.ViewQueue)

	for msg := range msgs {
		var event rabbitmq.ViewEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			// 格式错的消息重投也救不回来，直接丢
			logger.Log.WithError(err).Error("观看事件反序列化失败，消息丢弃")
			msg.Nack(false, false)
			continue
		}

		logCtx := logger.Log.WithField("video_id", event.VideoID)

		if err := videoRepo.IncrementViews(event.VideoID); err != nil {
			// 数据库抖动，重新入队稍后再试
			logCtx.WithError(err).Error("播放量落库失败，消息重新入队")
			msg.Nack(false, true)
			continue
		}

		// 视频可能已被删掉，UPDATE影响0行也算成功——重投没有意义

		if err := videoRepo.DelVideoCache(event.VideoID); err != nil {
			// 缓存清不掉最多脏5分钟，不值得为它重投消息
			logCtx.WithError(err).Warn("清理视频缓存失败")
		}

		logCtx.Debug("播放量+1")
		msg.Ack(false)
	}
}
