package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelNotifications = "notification_events"
)

// 事件类型
const (
	EventNotification = "notification"
	EventBudgetAlert  = "budget_alert"
)

// NotificationMessage 推送事件。worker 侧产生，server 侧转发给用户的 WebSocket 连接
type NotificationMessage struct {
	Type           string  `json:"type"`
	UserID         int64   `json:"user_id"`
	NotificationID int64   `json:"notification_id,omitempty"`
	SubscriptionID int64   `json:"subscription_id,omitempty"`
	Kind           string  `json:"kind,omitempty"`
	Title          string  `json:"title,omitempty"`
	Message        string  `json:"message,omitempty"`
	Priority       string  `json:"priority,omitempty"`
	Threshold      float64 `json:"threshold,omitempty"`
	Percentage     float64 `json:"percentage,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布推送事件
func (p *Publisher) Publish(ctx context.Context, msg *NotificationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification message: %w", err)
	}

	return p.client.Publish(ctx, ChannelNotifications, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅推送事件，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*NotificationMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelNotifications)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event NotificationMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
