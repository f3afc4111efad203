package billing

import (
	"math"
	"time"
)

// NextOccurrence 从锚点日期出发，按周期逐步推进，返回不早于 reference 的首个账单日。
// 使用 AddDate 做日历感知的月份/年份运算，月末溢出由标准库归一化
// （如 1月31日 +1个月 → 3月2/3日）。锚点晚于 reference 时原样返回，零次迭代。
func NextOccurrence(anchor time.Time, cycle Cycle, reference time.Time) (time.Time, error) {
	if _, err := ParseCycle(string(cycle)); err != nil {
		return time.Time{}, err
	}

	candidate := anchor
	for candidate.Before(reference) {
		candidate = advance(candidate, cycle)
	}
	return candidate, nil
}

// advance 推进一个计费周期。每步严格增加日期，循环必然终止。
func advance(t time.Time, cycle Cycle) time.Time {
	switch cycle {
	case CycleQuarterly:
		return t.AddDate(0, 3, 0)
	case CycleYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// DaysUntil 计算从 reference 到 due 的天数，向上取整。
// due 在 reference 之前时为负数。
func DaysUntil(reference, due time.Time) int {
	return int(math.Ceil(due.Sub(reference).Hours() / 24))
}
