package billing

import (
	"fmt"
	"time"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

// Kind 提醒事件类型
type Kind string

const (
	KindUpcoming Kind = model.NotificationUpcoming
	KindOverdue  Kind = model.NotificationOverdue
)

// EventKey 提醒事件的确定性去重键。结构化组合 (类型, 订阅ID, 账单日期)，
// 订阅 ID 为数值、日期格式固定，字符串形式不存在分隔符碰撞。
type EventKey struct {
	Kind           Kind
	SubscriptionID int64
	DueDate        time.Time
}

func (k EventKey) String() string {
	return fmt.Sprintf("%s:%d:%s", k.Kind, k.SubscriptionID, k.DueDate.Format("2006-01-02"))
}

// KeySet 已存在的事件键集合
type KeySet map[string]struct{}

func NewKeySet(keys []string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s KeySet) Contains(k EventKey) bool {
	_, ok := s[k.String()]
	return ok
}

func (s KeySet) Add(k EventKey) {
	s[k.String()] = struct{}{}
}

// Event 一次评估产生的新提醒事件。持久化与投递（站内推送、邮件队列）由调用方负责。
type Event struct {
	Key          EventKey
	Subscription *model.Subscription
	DueDate      time.Time
	DaysUntilDue int // overdue 事件为负数
	Priority     string
}

// EvaluateReminders 对订阅集合做一轮提醒评估，返回仅新增的事件。
//
// 每个 (订阅, 账单日期) 至多产生一条 upcoming 和一条 overdue 事件：
// 键已存在于 existing 中的被跳过。提醒未启用时直接返回空。
// 账单日在 [0, settings.DaysBefore] 天内 → upcoming，剩余 ≤3 天为 high 否则 medium；
// 按日历日已过期（剩余天数为负）→ overdue，恒为 high。当天到期始终算 upcoming，
// 与 reference 携带的时刻无关。单条非法记录跳过，不影响整批评估。
func EvaluateReminders(subs []*model.Subscription, existing KeySet, reference time.Time, settings *model.ReminderSettings) []Event {
	if settings == nil || !settings.Enabled {
		return nil
	}

	events := make([]Event, 0)
	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		if err := validate(sub); err != nil {
			continue
		}

		due := sub.NextBillingDate
		days := DaysUntil(reference, due)

		if days < 0 {
			key := EventKey{Kind: KindOverdue, SubscriptionID: sub.ID, DueDate: due}
			if !existing.Contains(key) {
				events = append(events, Event{
					Key:          key,
					Subscription: sub,
					DueDate:      due,
					DaysUntilDue: days,
					Priority:     model.PriorityHigh,
				})
			}
			continue
		}

		if days > settings.DaysBefore {
			continue
		}

		key := EventKey{Kind: KindUpcoming, SubscriptionID: sub.ID, DueDate: due}
		if existing.Contains(key) {
			continue
		}

		priority := model.PriorityMedium
		if days <= 3 {
			priority = model.PriorityHigh
		}
		events = append(events, Event{
			Key:          key,
			Subscription: sub,
			DueDate:      due,
			DaysUntilDue: days,
			Priority:     priority,
		})
	}
	return events
}
