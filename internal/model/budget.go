package model

import (
	"strconv"
	"strings"
	"time"
)

// 告警方式
const (
	AlertMethodBrowser = "browser"
	AlertMethodEmail   = "email"
	AlertMethodBoth    = "both"
)

// Budget 用户月度预算。Thresholds 以逗号分隔存储（如 "75,90,100"），升序。
type Budget struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	MonthlyLimit float64   `gorm:"type:decimal(10,2);default:0" json:"monthly_limit"`
	Thresholds   string    `gorm:"size:100;default:'75,90,100'" json:"-"`
	AlertMethod  string    `gorm:"size:20;default:browser" json:"alert_method"` // browser, email, both
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

// ThresholdList 解析阈值列表，非法片段忽略
func (b *Budget) ThresholdList() []float64 {
	var out []float64
	for _, part := range strings.Split(b.Thresholds, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SetThresholds 序列化阈值列表
func (b *Budget) SetThresholds(thresholds []float64) {
	parts := make([]string, 0, len(thresholds))
	for _, t := range thresholds {
		parts = append(parts, strconv.FormatFloat(t, 'f', -1, 64))
	}
	b.Thresholds = strings.Join(parts, ",")
}

// CategoryBudget 分类预算
type CategoryBudget struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"not null;index:idx_user_category,unique" json:"user_id"`
	Category     string    `gorm:"size:50;not null;index:idx_user_category,unique" json:"category"`
	MonthlyLimit float64   `gorm:"type:decimal(10,2);not null" json:"monthly_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (CategoryBudget) TableName() string {
	return "category_budgets"
}
