package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/billing"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

var (
	ErrSubscriptionNotFound = errors.New("订阅不存在")
	ErrNoPermission         = errors.New("无权操作该资源")
	ErrInvalidBillingDate   = errors.New("无效的账单日期")
)

// upcomingHorizonDays 统计与列表中"即将到期"的窗口
const upcomingHorizonDays = 30

type SubscriptionService struct {
	subRepo *repository.SubscriptionRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo}
}

// Create 新建订阅
func (s *SubscriptionService) Create(userID int64, req *dto.CreateSubscriptionRequest) (*model.Subscription, error) {
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}

	billingDate, err := time.Parse("2006-01-02", req.NextBillingDate)
	if err != nil {
		return nil, ErrInvalidBillingDate
	}

	sub := &model.Subscription{
		UserID:          userID,
		Name:            req.Name,
		Amount:          req.Amount,
		BillingCycle:    string(cycle),
		NextBillingDate: billingDate,
		Category:        req.Category,
		Status:          model.StatusActive,
		Description:     req.Description,
	}

	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Get 获取单个订阅，校验归属
func (s *SubscriptionService) Get(id, userID int64) (*model.Subscription, error) {
	sub, err := s.subRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrNoPermission
	}
	return sub, nil
}

// List 获取用户全部订阅，可按状态过滤
func (s *SubscriptionService) List(userID int64, status string) ([]*model.Subscription, error) {
	if status == "" {
		return s.subRepo.ListByUser(userID)
	}
	return s.subRepo.ListByUserAndStatus(userID, status)
}

// Update 更新订阅，零值字段保持不变
func (s *SubscriptionService) Update(id, userID int64, req *dto.UpdateSubscriptionRequest) (*model.Subscription, error) {
	sub, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Amount != nil {
		sub.Amount = *req.Amount
	}
	if req.BillingCycle != nil {
		cycle, err := billing.ParseCycle(*req.BillingCycle)
		if err != nil {
			return nil, err
		}
		sub.BillingCycle = string(cycle)
	}
	if req.NextBillingDate != nil {
		billingDate, err := time.Parse("2006-01-02", *req.NextBillingDate)
		if err != nil {
			return nil, ErrInvalidBillingDate
		}
		sub.NextBillingDate = billingDate
	}
	if req.Category != nil {
		sub.Category = *req.Category
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}

	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete 删除订阅，校验归属
func (s *SubscriptionService) Delete(id, userID int64) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.subRepo.Delete(id)
}

// Upcoming 未来 days 天内到期的付款，按到期日升序
func (s *SubscriptionService) Upcoming(userID int64, days int) ([]billing.UpcomingPayment, error) {
	if days <= 0 {
		days = upcomingHorizonDays
	}
	subs, err := s.subRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	return billing.Upcoming(subs, time.Now(), days), nil
}

// Stats 订阅总览统计
func (s *SubscriptionService) Stats(userID int64) (*dto.SubscriptionStats, error) {
	subs, err := s.subRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &dto.SubscriptionStats{
		TotalSubscriptions: len(subs),
	}

	var active []*model.Subscription
	for _, sub := range subs {
		if sub.IsActive() {
			active = append(active, sub)
		}
	}
	stats.TotalActive = len(active)
	stats.MonthlySpend = billing.CurrentSpending(active)

	now := time.Now()
	upcoming := billing.Upcoming(active, now, upcomingHorizonDays)
	stats.UpcomingPaymentsCount = len(upcoming)
	if len(upcoming) > 0 {
		next := upcoming[0]
		stats.NextPaymentDueDays = &next.DaysUntilDue
		stats.NextPaymentAmount = &next.Subscription.Amount
	}

	return stats, nil
}
