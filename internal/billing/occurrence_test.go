package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	t.Run("anchor after reference returned unchanged", func(t *testing.T) {
		anchor := date(2025, 9, 25)
		got, err := NextOccurrence(anchor, CycleMonthly, date(2025, 9, 20))
		require.NoError(t, err)
		assert.Equal(t, anchor, got)
	})

	t.Run("anchor equal to reference returned unchanged", func(t *testing.T) {
		anchor := date(2025, 9, 20)
		got, err := NextOccurrence(anchor, CycleMonthly, anchor)
		require.NoError(t, err)
		assert.Equal(t, anchor, got)
	})

	t.Run("monthly advances past reference", func(t *testing.T) {
		got, err := NextOccurrence(date(2025, 1, 15), CycleMonthly, date(2025, 4, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 4, 15), got)
	})

	t.Run("quarterly advances in three month steps", func(t *testing.T) {
		got, err := NextOccurrence(date(2025, 1, 10), CycleQuarterly, date(2025, 5, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 7, 10), got)
	})

	t.Run("yearly advances in year steps", func(t *testing.T) {
		got, err := NextOccurrence(date(2020, 6, 1), CycleYearly, date(2025, 6, 2))
		require.NoError(t, err)
		assert.Equal(t, date(2026, 6, 1), got)
	})

	t.Run("month overflow normalized by calendar", func(t *testing.T) {
		// 1月31日 +1个月 → 2月31日不存在，标准库归一化为 3月2/3日
		got, err := NextOccurrence(date(2025, 1, 31), CycleMonthly, date(2025, 2, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 3), got)
	})

	t.Run("invalid cycle rejected", func(t *testing.T) {
		_, err := NextOccurrence(date(2025, 1, 1), Cycle("weekly"), date(2025, 2, 1))
		assert.ErrorIs(t, err, ErrInvalidCycle)
	})
}

// 重复投影是幂等的：next(next(a, ref), next(a, ref)) == next(a, ref)
func TestNextOccurrence_Idempotent(t *testing.T) {
	anchors := []time.Time{
		date(2024, 1, 31),
		date(2025, 2, 28),
		date(2023, 12, 1),
	}
	reference := date(2025, 9, 20)

	for _, cycle := range []Cycle{CycleMonthly, CycleQuarterly, CycleYearly} {
		for _, anchor := range anchors {
			first, err := NextOccurrence(anchor, cycle, reference)
			require.NoError(t, err)
			assert.False(t, first.Before(reference))

			second, err := NextOccurrence(first, cycle, first)
			require.NoError(t, err)
			assert.Equal(t, first, second, "cycle=%s anchor=%v", cycle, anchor)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	ref := date(2025, 9, 20)

	assert.Equal(t, 0, DaysUntil(ref, ref))
	assert.Equal(t, 5, DaysUntil(ref, date(2025, 9, 25)))
	assert.Equal(t, -5, DaysUntil(ref, date(2025, 9, 15)))

	// 不足一天向上取整
	assert.Equal(t, 1, DaysUntil(ref, ref.Add(2*time.Hour)))
}
