package rabbitmq

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

// ViewQueue 播放量事件队列：HTTP侧只负责投递，落库由consumer进程异步完成
const ViewQueue = "nebula.view.queue"

// ViewEvent 一次有效观看，videoId对应videos表的主键
type ViewEvent struct {
	VideoID uint64 `json:"videoId"`
}

// InitRabbitMQ 初始化RabbitMQ连接
func InitRabbitMQ(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Producer 持有一条channel往固定队列投消息
type Producer struct {
	ch    *amqp.Channel
	queue string
}

// NewProducer 打开channel并声明durable队列，保证消费者没起时消息不丢
func NewProducer(conn *amqp.Connection, queue string) (*Producer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Producer{ch: ch, queue: queue}, nil
}

// Publish 把消息序列化成JSON，以持久化模式投进队列
func (p *Producer) Publish(message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return p.ch.Publish(
		"",      // exchange：默认交换机，按队列名路由
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
}

func (p *Producer) Close() error {
	return p.ch.Close()
}
