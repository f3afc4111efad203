package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/billing"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

var ErrCategoryBudgetNotFound = errors.New("分类预算不存在")

type BudgetService struct {
	budgetRepo *repository.BudgetRepository
	subRepo    *repository.SubscriptionRepository
	cfg        *config.Config
}

func NewBudgetService(
	budgetRepo *repository.BudgetRepository,
	subRepo *repository.SubscriptionRepository,
	cfg *config.Config,
) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		subRepo:    subRepo,
		cfg:        cfg,
	}
}

// Get 获取预算配置，不存在时创建默认值
func (s *BudgetService) Get(userID int64) (*model.Budget, error) {
	budget, err := s.budgetRepo.GetByUser(userID)
	if err == nil {
		return budget, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	budget = &model.Budget{
		UserID:      userID,
		AlertMethod: model.AlertMethodBrowser,
	}
	budget.SetThresholds(s.cfg.Budget.DefaultThresholds)
	if err := s.budgetRepo.Create(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Update 更新预算配置，零值字段保持不变
func (s *BudgetService) Update(userID int64, req *dto.UpdateBudgetRequest) (*model.Budget, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.MonthlyLimit != nil {
		budget.MonthlyLimit = *req.MonthlyLimit
	}
	if len(req.Thresholds) > 0 {
		budget.SetThresholds(req.Thresholds)
	}
	if req.AlertMethod != nil {
		budget.AlertMethod = *req.AlertMethod
	}

	if err := s.budgetRepo.Update(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Summary 预算使用概览
func (s *BudgetService) Summary(userID int64) (*dto.BudgetSummary, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	spending := billing.CurrentSpending(subs)
	summary := &dto.BudgetSummary{
		MonthlyLimit:    budget.MonthlyLimit,
		CurrentSpending: spending,
		Remaining:       budget.MonthlyLimit - spending,
		Thresholds:      budget.ThresholdList(),
		AlertMethod:     budget.AlertMethod,
	}
	if budget.MonthlyLimit > 0 {
		summary.PercentageUsed = spending / budget.MonthlyLimit * 100
	}
	return summary, nil
}

// EvaluateAlerts 按当前支出评估预算告警，未配置预算时返回空
func (s *BudgetService) EvaluateAlerts(userID int64) ([]billing.BudgetAlert, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}

	return billing.EvaluateBudgetAlerts(subs, budget.MonthlyLimit, budget.ThresholdList(), time.Now()), nil
}

// SetCategoryBudget 创建或更新分类预算
func (s *BudgetService) SetCategoryBudget(userID int64, req *dto.SetCategoryBudgetRequest) (*model.CategoryBudget, error) {
	cb := &model.CategoryBudget{
		UserID:       userID,
		Category:     req.Category,
		MonthlyLimit: req.MonthlyLimit,
	}
	if err := s.budgetRepo.UpsertCategory(cb); err != nil {
		return nil, err
	}
	return cb, nil
}

// DeleteCategoryBudget 删除分类预算
func (s *BudgetService) DeleteCategoryBudget(userID int64, category string) error {
	return s.budgetRepo.DeleteCategory(userID, category)
}

// CategoryStatus 各分类预算使用情况，按分类预算配置逐项对比实际支出
func (s *BudgetService) CategoryStatus(userID int64) ([]*dto.CategoryBudgetStatus, error) {
	categories, err := s.budgetRepo.ListCategories(userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	totals := billing.CategoryTotals(subs)

	out := make([]*dto.CategoryBudgetStatus, 0, len(categories))
	for _, cb := range categories {
		status := &dto.CategoryBudgetStatus{
			Category:     cb.Category,
			MonthlyLimit: cb.MonthlyLimit,
			Spending:     totals[cb.Category],
		}
		if cb.MonthlyLimit > 0 {
			status.PercentageUsed = status.Spending / cb.MonthlyLimit * 100
		}
		out = append(out, status)
	}
	return out, nil
}
