package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

var seq int64

func nextSeq() int64 {
	return atomic.AddInt64(&seq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := nextSeq()
	user := &model.User{
		Username:     fmt.Sprintf("testuser_%d", n),
		Email:        fmt.Sprintf("test_%d@example.com", n),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:          userID,
		Name:            fmt.Sprintf("Service %d", nextSeq()),
		Amount:          9.99,
		BillingCycle:    model.CycleMonthly,
		NextBillingDate: time.Now().AddDate(0, 0, 14).Truncate(24 * time.Hour),
		Category:        "Entertainment",
		Status:          model.StatusActive,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithCycle 设置计费周期
func WithCycle(cycle string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.BillingCycle = cycle
	}
}

// WithAmount 设置金额
func WithAmount(amount float64) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Amount = amount
	}
}

// WithStatus 设置状态
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithBillingDate 设置下次账单日
func WithBillingDate(d time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.NextBillingDate = d
	}
}

// WithCategory 设置分类
func WithCategory(category string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Category = category
	}
}

// TestSettings 创建测试提醒设置
func TestSettings(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.ReminderSettings)) *model.ReminderSettings {
	t.Helper()

	s := &model.ReminderSettings{
		UserID:     userID,
		Enabled:    true,
		DaysBefore: 7,
		Channel:    model.ChannelBrowser,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := db.Create(s).Error; err != nil {
		t.Fatalf("Failed to create test settings: %v", err)
	}

	return s
}

// WithChannel 设置提醒渠道
func WithChannel(channel string) func(*model.ReminderSettings) {
	return func(s *model.ReminderSettings) {
		s.Channel = channel
	}
}
