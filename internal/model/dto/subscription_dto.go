package dto

// CreateSubscriptionRequest 新建订阅请求
type CreateSubscriptionRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	Amount          float64 `json:"amount" binding:"required,gte=0"`
	BillingCycle    string  `json:"billing_cycle" binding:"required,oneof=monthly quarterly yearly"`
	NextBillingDate string  `json:"next_billing_date" binding:"required"` // 2006-01-02
	Category        string  `json:"category" binding:"max=50"`
	Description     string  `json:"description"`
}

// UpdateSubscriptionRequest 更新订阅请求，零值字段不更新
type UpdateSubscriptionRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Amount          *float64 `json:"amount,omitempty" binding:"omitempty,gte=0"`
	BillingCycle    *string  `json:"billing_cycle,omitempty" binding:"omitempty,oneof=monthly quarterly yearly"`
	NextBillingDate *string  `json:"next_billing_date,omitempty"`
	Category        *string  `json:"category,omitempty" binding:"omitempty,max=50"`
	Status          *string  `json:"status,omitempty" binding:"omitempty,oneof=active expired canceled pending"`
	Description     *string  `json:"description,omitempty"`
}

// SubscriptionStats 订阅总览统计
type SubscriptionStats struct {
	TotalSubscriptions    int      `json:"total_subscriptions"`
	TotalActive           int      `json:"total_active"`
	MonthlySpend          float64  `json:"monthly_spend"`
	NextPaymentDueDays    *int     `json:"next_payment_due_days,omitempty"`
	NextPaymentAmount     *float64 `json:"next_payment_amount,omitempty"`
	UpcomingPaymentsCount int      `json:"upcoming_payments_count"`
}
