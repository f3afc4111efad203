package model

import (
	"time"
)

// 通知类型
const (
	NotificationUpcoming = "upcoming"
	NotificationOverdue  = "overdue"
)

// 通知优先级
const (
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification 付款提醒通知。DedupKey 由 (类型, 订阅ID, 账单日期) 确定性生成，
// 唯一索引保证同一到期日最多产生一条通知，跨进程并发写入也不会重复。
type Notification struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;index" json:"user_id"`
	SubscriptionID int64     `gorm:"not null;index" json:"subscription_id"`
	DedupKey       string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	Kind           string    `gorm:"size:20;not null" json:"kind"` // upcoming, overdue
	Title          string    `gorm:"size:100;not null" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	DueDate        time.Time `gorm:"not null" json:"due_date"`
	Priority       string    `gorm:"size:10;not null" json:"priority"` // medium, high
	Read           bool      `gorm:"default:false;index" json:"read"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
