package model

import (
	"time"
)

// 计费周期
const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleYearly    = "yearly"
)

// 订阅状态
const (
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
	StatusPending  = "pending"
)

type Subscription struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	BillingCycle    string    `gorm:"size:20;not null" json:"billing_cycle"` // monthly, quarterly, yearly
	NextBillingDate time.Time `gorm:"not null;index" json:"next_billing_date"`
	Category        string    `gorm:"size:50;index" json:"category"`
	Status          string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, canceled, pending
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive 是否为活跃订阅
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}
