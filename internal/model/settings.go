package model

import (
	"time"
)

// 提醒渠道
const (
	ChannelBrowser = "browser"
	ChannelEmail   = "email"
	ChannelBoth    = "both"
)

// ReminderSettings 用户付款提醒设置，由设置页维护，提醒评估只读
type ReminderSettings struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"uniqueIndex;not null" json:"user_id"`
	Enabled     bool       `gorm:"default:true" json:"enabled"`
	DaysBefore  int        `gorm:"default:7" json:"days_before"`
	Channel     string     `gorm:"size:20;default:browser" json:"channel"` // browser, email, both
	LastCheckAt *time.Time `json:"last_check_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ReminderSettings) TableName() string {
	return "reminder_settings"
}

// EmailEnabled 是否需要邮件提醒
func (s *ReminderSettings) EmailEnabled() bool {
	return s.Channel == ChannelEmail || s.Channel == ChannelBoth
}
