// Package billing 实现订阅计费的核心规则：周期归一化、下次账单日推算、
// 即将到期查询、提醒去重与预算告警。所有函数都是纯函数，参考时间由调用方传入，
// 不读取全局时钟，也不访问存储。
package billing

import (
	"errors"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

var (
	ErrInvalidCycle    = errors.New("无效的计费周期")
	ErrMalformedRecord = errors.New("订阅记录缺少必要字段")
)

// Cycle 计费周期
type Cycle string

const (
	CycleMonthly   Cycle = model.CycleMonthly
	CycleQuarterly Cycle = model.CycleQuarterly
	CycleYearly    Cycle = model.CycleYearly
)

// ParseCycle 校验并转换计费周期字符串
func ParseCycle(s string) (Cycle, error) {
	switch Cycle(s) {
	case CycleMonthly, CycleQuarterly, CycleYearly:
		return Cycle(s), nil
	default:
		return "", ErrInvalidCycle
	}
}

// MonthlyEquivalent 将任意周期的金额归一化为月度等价金额。
// 不做四舍五入，展示层自行处理精度。
// 未识别的周期返回 ErrInvalidCycle，调用方不得静默降级，否则月度合计会被污染。
func MonthlyEquivalent(amount float64, cycle Cycle) (float64, error) {
	switch cycle {
	case CycleMonthly:
		return amount, nil
	case CycleQuarterly:
		return amount / 3, nil
	case CycleYearly:
		return amount / 12, nil
	default:
		return 0, ErrInvalidCycle
	}
}

// PeriodsPerYear 每年计费次数
func PeriodsPerYear(cycle Cycle) (int, error) {
	switch cycle {
	case CycleMonthly:
		return 12, nil
	case CycleQuarterly:
		return 4, nil
	case CycleYearly:
		return 1, nil
	default:
		return 0, ErrInvalidCycle
	}
}

// validate 检查订阅记录是否完整。批量评估中单条非法记录被跳过，不影响整批。
func validate(sub *model.Subscription) error {
	if sub == nil {
		return ErrMalformedRecord
	}
	if sub.Amount < 0 {
		return ErrMalformedRecord
	}
	if sub.NextBillingDate.IsZero() {
		return ErrMalformedRecord
	}
	if _, err := ParseCycle(sub.BillingCycle); err != nil {
		return err
	}
	return nil
}
