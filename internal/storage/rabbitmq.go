package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQ 消息队列访问层，承载异步批量匹配任务
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
}

// NewRabbitMQ 建立连接并声明交换机、任务队列与绑定
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("rabbitmq配置不能为空")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开RabbitMQ通道失败: %w", err)
	}

	mq := &RabbitMQ{conn: conn, channel: channel, config: cfg}
	if err := mq.declareTopology(); err != nil {
		mq.Close()
		return nil, err
	}
	return mq, nil
}

func (mq *RabbitMQ) declareTopology() error {
	err := mq.channel.ExchangeDeclare(
		mq.config.MatchEventsExchange,
		"direct",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("声明交换机失败: %w", err)
	}

	_, err = mq.channel.QueueDeclare(
		mq.config.MatchTaskQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("声明任务队列失败: %w", err)
	}

	err = mq.channel.QueueBind(
		mq.config.MatchTaskQueue,
		mq.config.MatchTaskRoutingKey,
		mq.config.MatchEventsExchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("绑定任务队列失败: %w", err)
	}

	prefetch := mq.config.PrefetchCount
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := mq.channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}
	return nil
}

// Close 关闭通道与连接
func (mq *RabbitMQ) Close() error {
	if mq.channel != nil {
		mq.channel.Close()
	}
	if mq.conn != nil {
		return mq.conn.Close()
	}
	return nil
}

// PublishMatchTask 把匹配任务序列化后发布到任务队列
func (mq *RabbitMQ) PublishMatchTask(ctx context.Context, task *MatchTaskMessage) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("序列化匹配任务失败: %w", err)
	}

	err = mq.channel.PublishWithContext(ctx,
		mq.config.MatchEventsExchange,
		mq.config.MatchTaskRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    task.TaskID,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("发布匹配任务失败: %w", err)
	}
	return nil
}

// PublishMessage 发布任意消息体到指定交换机，发件箱中继使用
// 每次投递生成独立的消息ID，重试投递在代理侧可区分
func (mq *RabbitMQ) PublishMessage(ctx context.Context, exchange, routingKey string, body []byte, persistent bool) error {
	publishing := amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Body:        body,
	}
	if persistent {
		publishing.DeliveryMode = amqp.Persistent
	}
	if err := mq.channel.PublishWithContext(ctx, exchange, routingKey, false, false, publishing); err != nil {
		return fmt.Errorf("发布消息到交换机 %s 失败: %w", exchange, err)
	}
	return nil
}

// StartMatchTaskConsumer 启动任务消费循环，阻塞直到 ctx 取消
// handler 返回错误时消息 nack 且不重回队列，避免毒消息循环
func (mq *RabbitMQ) StartMatchTaskConsumer(ctx context.Context, handler func(ctx context.Context, task *MatchTaskMessage) error) error {
	deliveries, err := mq.channel.Consume(
		mq.config.MatchTaskQueue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("订阅任务队列失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("任务队列投递通道已关闭")
			}
			mq.handleDelivery(ctx, delivery, handler)
		}
	}
}

func (mq *RabbitMQ) handleDelivery(ctx context.Context, delivery amqp.Delivery, handler func(ctx context.Context, task *MatchTaskMessage) error) {
	var task MatchTaskMessage
	if err := json.Unmarshal(delivery.Body, &task); err != nil {
		logger.Error().Err(err).Str("message_id", delivery.MessageId).Msg("匹配任务消息格式非法，丢弃")
		_ = delivery.Nack(false, false)
		return
	}

	if err := handler(ctx, &task); err != nil {
		logger.Error().Err(err).Str("task_id", task.TaskID).Msg("匹配任务处理失败")
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}
