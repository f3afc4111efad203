package billing

import (
	"sort"
	"time"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

// UpcomingPayment 即将到期的付款视图，按需派生，不落库
type UpcomingPayment struct {
	Subscription *model.Subscription `json:"subscription"`
	DueDate      time.Time           `json:"due_date"`
	DaysUntilDue int                 `json:"days_until_due"`
}

// Upcoming 返回 horizonDays 天内到期的活跃订阅，按剩余天数升序排列，
// 同天保持原始顺序。纯查询，无副作用。非法记录单条跳过。
func Upcoming(subs []*model.Subscription, reference time.Time, horizonDays int) []UpcomingPayment {
	result := make([]UpcomingPayment, 0)
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		if err := validate(sub); err != nil {
			continue
		}

		due, err := NextOccurrence(sub.NextBillingDate, Cycle(sub.BillingCycle), reference)
		if err != nil {
			continue
		}

		days := DaysUntil(reference, due)
		if days < 0 || days > horizonDays {
			continue
		}

		result = append(result, UpcomingPayment{
			Subscription: sub,
			DueDate:      due,
			DaysUntilDue: days,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DaysUntilDue < result[j].DaysUntilDue
	})
	return result
}

// CurrentSpending 活跃订阅的月度等价支出合计，非法记录跳过
func CurrentSpending(subs []*model.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		monthly, err := MonthlyEquivalent(sub.Amount, Cycle(sub.BillingCycle))
		if err != nil {
			continue
		}
		total += monthly
	}
	return total
}

// CategoryTotals 按分类统计活跃订阅的月度等价支出
func CategoryTotals(subs []*model.Subscription) map[string]float64 {
	totals := make(map[string]float64)
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		monthly, err := MonthlyEquivalent(sub.Amount, Cycle(sub.BillingCycle))
		if err != nil {
			continue
		}
		totals[sub.Category] += monthly
	}
	return totals
}
