package billing

import (
	"time"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

// BudgetAlert 预算告警事件。临时事件，不落库
type BudgetAlert struct {
	Threshold  float64   `json:"threshold"`
	Percentage float64   `json:"percentage"`
	Spending   float64   `json:"spending"`
	Limit      float64   `json:"limit"`
	Timestamp  time.Time `json:"timestamp"`
}

// EvaluateBudgetAlerts 比较月度等价支出与预算阈值，对每个已达到的阈值产生一条告警。
//
// 未配置预算（limit <= 0）返回空。thresholds 由调用方按升序传入。
// 告警不做跨轮次去重：同一支出水平下每轮评估都会对每个已达阈值重新产生告警，
// 这是沿用的既有行为，上层自行决定展示策略。
func EvaluateBudgetAlerts(subs []*model.Subscription, monthlyLimit float64, thresholds []float64, reference time.Time) []BudgetAlert {
	if monthlyLimit <= 0 {
		return nil
	}

	spending := CurrentSpending(subs)
	percentage := spending / monthlyLimit * 100

	alerts := make([]BudgetAlert, 0)
	for _, threshold := range thresholds {
		if percentage >= threshold {
			alerts = append(alerts, BudgetAlert{
				Threshold:  threshold,
				Percentage: percentage,
				Spending:   spending,
				Limit:      monthlyLimit,
				Timestamp:  reference,
			})
		}
	}
	return alerts
}
