package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

func TestEvaluateBudgetAlerts(t *testing.T) {
	ref := date(2025, 9, 20)

	t.Run("alerts only for thresholds met", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Big", 90, model.CycleMonthly, date(2025, 10, 1)),
		}

		alerts := EvaluateBudgetAlerts(subs, 100, []float64{75, 90, 100}, ref)
		assert.Len(t, alerts, 2)
		assert.Equal(t, float64(75), alerts[0].Threshold)
		assert.Equal(t, float64(90), alerts[1].Threshold)
		assert.InDelta(t, 90, alerts[0].Percentage, 1e-9)
	})

	t.Run("no budget configured yields no alerts", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Big", 90, model.CycleMonthly, date(2025, 10, 1)),
		}

		assert.Empty(t, EvaluateBudgetAlerts(subs, 0, []float64{75}, ref))
		assert.Empty(t, EvaluateBudgetAlerts(subs, -10, []float64{75}, ref))
	})

	t.Run("no thresholds yields no alerts", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Big", 90, model.CycleMonthly, date(2025, 10, 1)),
		}

		assert.Empty(t, EvaluateBudgetAlerts(subs, 100, nil, ref))
	})

	t.Run("over budget fires every threshold", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Big", 150, model.CycleMonthly, date(2025, 10, 1)),
		}

		alerts := EvaluateBudgetAlerts(subs, 100, []float64{75, 90, 100}, ref)
		assert.Len(t, alerts, 3)
	})

	t.Run("refires on every evaluation without dedup", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Big", 90, model.CycleMonthly, date(2025, 10, 1)),
		}

		first := EvaluateBudgetAlerts(subs, 100, []float64{75, 90}, ref)
		second := EvaluateBudgetAlerts(subs, 100, []float64{75, 90}, ref)
		assert.Len(t, first, 2)
		assert.Len(t, second, 2)
	})

	t.Run("mixed cycles normalized before comparison", func(t *testing.T) {
		subs := []*model.Subscription{
			activeSub(1, "Monthly", 50, model.CycleMonthly, date(2025, 10, 1)),
			activeSub(2, "Yearly", 360, model.CycleYearly, date(2025, 10, 1)), // 30/月
		}

		alerts := EvaluateBudgetAlerts(subs, 100, []float64{75, 90}, ref)
		assert.Len(t, alerts, 1)
		assert.Equal(t, float64(75), alerts[0].Threshold)
		assert.InDelta(t, 80, alerts[0].Percentage, 1e-9)
	})
}
