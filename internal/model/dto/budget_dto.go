package dto

// UpdateBudgetRequest 更新预算请求
type UpdateBudgetRequest struct {
	MonthlyLimit *float64  `json:"monthly_limit,omitempty" binding:"omitempty,gte=0"`
	Thresholds   []float64 `json:"thresholds,omitempty" binding:"omitempty,dive,gt=0"`
	AlertMethod  *string   `json:"alert_method,omitempty" binding:"omitempty,oneof=browser email both"`
}

// BudgetSummary 预算概览
type BudgetSummary struct {
	MonthlyLimit    float64   `json:"monthly_limit"`
	CurrentSpending float64   `json:"current_spending"`
	Remaining       float64   `json:"remaining"`
	PercentageUsed  float64   `json:"percentage_used"`
	Thresholds      []float64 `json:"thresholds"`
	AlertMethod     string    `json:"alert_method"`
}

// SetCategoryBudgetRequest 设置分类预算请求
type SetCategoryBudgetRequest struct {
	Category     string  `json:"category" binding:"required,max=50"`
	MonthlyLimit float64 `json:"monthly_limit" binding:"gte=0"`
}

// CategoryBudgetStatus 分类预算使用情况
type CategoryBudgetStatus struct {
	Category       string  `json:"category"`
	MonthlyLimit   float64 `json:"monthly_limit"`
	Spending       float64 `json:"spending"`
	PercentageUsed float64 `json:"percentage_used"`
}

// UpdateSettingsRequest 更新提醒设置请求
type UpdateSettingsRequest struct {
	Enabled    *bool   `json:"enabled,omitempty"`
	DaysBefore *int    `json:"days_before,omitempty" binding:"omitempty,gt=0,lte=90"`
	Channel    *string `json:"channel,omitempty" binding:"omitempty,oneof=browser email both"`
}
