package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 邮件类型
const (
	EmailPaymentReminder = "payment_reminder"
	EmailOverdueNotice   = "overdue_notice"
	EmailBudgetAlert     = "budget_alert"
)

type Queue struct {
	client    *redis.Client
	queueName string
}

// EmailMessage 待发送的提醒邮件
type EmailMessage struct {
	Kind         string    `json:"kind"`
	UserID       int64     `json:"user_id"`
	To           string    `json:"to"`
	ServiceName  string    `json:"service_name,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	DueDate      time.Time `json:"due_date,omitempty"`
	DaysUntilDue int       `json:"days_until_due,omitempty"`
	Threshold    float64   `json:"threshold,omitempty"`
	Percentage   float64   `json:"percentage,omitempty"`
	Spending     float64   `json:"spending,omitempty"`
	Limit        float64   `json:"limit,omitempty"`
}

func NewQueue(client *redis.Client, queueName string) *Queue {
	return &Queue{
		client:    client,
		queueName: queueName,
	}
}

// Push 将邮件加入队列
func (q *Queue) Push(ctx context.Context, msg *EmailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.client.LPush(ctx, q.queueName, data).Err()
}

// Pop 从队列获取邮件（阻塞）
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*EmailMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 超时，无消息
		}
		return nil, fmt.Errorf("failed to pop from queue: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	var msg EmailMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	return &msg, nil
}

// Length 获取队列长度
func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.queueName).Result()
}
