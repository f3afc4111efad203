package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/subtrack/subtrack_go_server/internal/billing"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/pkg/pubsub"
	"github.com/subtrack/subtrack_go_server/internal/pkg/queue"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

// ReminderService 执行一轮提醒与预算评估：产生新通知、推送站内事件、投递邮件任务。
// 由 worker 的定时任务和 server 的用户操作触发，两边共用同一套去重键，
// 通知表的唯一索引保证并发评估下同一事件至多落库一次。
type ReminderService struct {
	subRepo      *repository.SubscriptionRepository
	notifRepo    *repository.NotificationRepository
	settingsRepo *repository.SettingsRepository
	budgetRepo   *repository.BudgetRepository
	userRepo     *repository.UserRepository
	publisher    *pubsub.Publisher
	emailQueue   *queue.Queue
}

func NewReminderService(
	subRepo *repository.SubscriptionRepository,
	notifRepo *repository.NotificationRepository,
	settingsRepo *repository.SettingsRepository,
	budgetRepo *repository.BudgetRepository,
	userRepo *repository.UserRepository,
	publisher *pubsub.Publisher,
	emailQueue *queue.Queue,
) *ReminderService {
	return &ReminderService{
		subRepo:      subRepo,
		notifRepo:    notifRepo,
		settingsRepo: settingsRepo,
		budgetRepo:   budgetRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		emailQueue:   emailQueue,
	}
}

// CheckUser 对单个用户做一轮评估，返回新产生的通知数
func (s *ReminderService) CheckUser(ctx context.Context, userID int64) (int, error) {
	settings, err := s.settingsRepo.GetByUser(userID)
	if err != nil {
		return 0, err
	}
	if !settings.Enabled {
		return 0, nil
	}

	subs, err := s.subRepo.ListActiveByUser(userID)
	if err != nil {
		return 0, err
	}

	keys, err := s.notifRepo.ListDedupKeys(userID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	events := billing.EvaluateReminders(subs, billing.NewKeySet(keys), now, settings)

	created := 0
	for _, event := range events {
		ok, err := s.deliverReminder(ctx, userID, settings, event)
		if err != nil {
			log.Printf("deliver reminder failed: user=%d key=%s err=%v", userID, event.Key, err)
			continue
		}
		if ok {
			created++
		}
	}

	if err := s.checkBudget(ctx, userID, subs, now); err != nil {
		log.Printf("budget check failed: user=%d err=%v", userID, err)
	}

	if err := s.settingsRepo.UpdateLastCheck(userID, now); err != nil {
		return created, err
	}
	return created, nil
}

// CheckAll 对所有开启提醒的用户做一轮评估
func (s *ReminderService) CheckAll(ctx context.Context) error {
	settingsList, err := s.settingsRepo.ListEnabled()
	if err != nil {
		return err
	}

	for _, settings := range settingsList {
		if _, err := s.CheckUser(ctx, settings.UserID); err != nil {
			log.Printf("reminder check failed: user=%d err=%v", settings.UserID, err)
		}
	}
	return nil
}

// deliverReminder 落库一条提醒通知并投递到各渠道。
// 返回 false 表示该事件已被其他评估写入（唯一索引冲突），整体跳过投递。
func (s *ReminderService) deliverReminder(ctx context.Context, userID int64, settings *model.ReminderSettings, event billing.Event) (bool, error) {
	notification := buildNotification(userID, event)
	inserted, err := s.notifRepo.Create(notification)
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, nil
	}

	if s.publisher != nil {
		msg := &pubsub.NotificationMessage{
			Type:           pubsub.EventNotification,
			UserID:         userID,
			NotificationID: notification.ID,
			SubscriptionID: event.Subscription.ID,
			Kind:           notification.Kind,
			Title:          notification.Title,
			Message:        notification.Message,
			Priority:       notification.Priority,
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			log.Printf("publish notification failed: user=%d err=%v", userID, err)
		}
	}

	if s.emailQueue != nil && settings.EmailEnabled() {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return true, err
		}

		kind := queue.EmailPaymentReminder
		days := event.DaysUntilDue
		if event.Key.Kind == billing.KindOverdue {
			kind = queue.EmailOverdueNotice
			days = -event.DaysUntilDue
		}
		msg := &queue.EmailMessage{
			Kind:         kind,
			UserID:       userID,
			To:           user.Email,
			ServiceName:  event.Subscription.Name,
			Amount:       event.Subscription.Amount,
			DueDate:      event.DueDate,
			DaysUntilDue: days,
		}
		if err := s.emailQueue.Push(ctx, msg); err != nil {
			log.Printf("enqueue reminder email failed: user=%d err=%v", userID, err)
		}
	}

	return true, nil
}

// checkBudget 评估预算告警。告警不落库、不去重，每轮评估都会重新推送，
// 让前端始终展示当前的超支状态。
func (s *ReminderService) checkBudget(ctx context.Context, userID int64, subs []*model.Subscription, now time.Time) error {
	budget, err := s.budgetRepo.GetByUser(userID)
	if err != nil {
		return err
	}

	alerts := billing.EvaluateBudgetAlerts(subs, budget.MonthlyLimit, budget.ThresholdList(), now)
	if len(alerts) == 0 {
		return nil
	}

	emailWanted := budget.AlertMethod == model.AlertMethodEmail || budget.AlertMethod == model.AlertMethodBoth
	var email string
	if s.emailQueue != nil && emailWanted {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return err
		}
		email = user.Email
	}

	for _, alert := range alerts {
		if s.publisher != nil {
			msg := &pubsub.NotificationMessage{
				Type:       pubsub.EventBudgetAlert,
				UserID:     userID,
				Title:      "预算告警",
				Message:    fmt.Sprintf("本月订阅支出已达预算的 %.0f%%（¥%.2f / ¥%.2f）", alert.Percentage, alert.Spending, alert.Limit),
				Threshold:  alert.Threshold,
				Percentage: alert.Percentage,
			}
			if err := s.publisher.Publish(ctx, msg); err != nil {
				log.Printf("publish budget alert failed: user=%d err=%v", userID, err)
			}
		}

		if email != "" {
			msg := &queue.EmailMessage{
				Kind:       queue.EmailBudgetAlert,
				UserID:     userID,
				To:         email,
				Threshold:  alert.Threshold,
				Percentage: alert.Percentage,
				Spending:   alert.Spending,
				Limit:      alert.Limit,
			}
			if err := s.emailQueue.Push(ctx, msg); err != nil {
				log.Printf("enqueue budget alert email failed: user=%d err=%v", userID, err)
			}
		}
	}
	return nil
}

func buildNotification(userID int64, event billing.Event) *model.Notification {
	n := &model.Notification{
		UserID:         userID,
		SubscriptionID: event.Subscription.ID,
		DedupKey:       event.Key.String(),
		Kind:           string(event.Key.Kind),
		DueDate:        event.DueDate,
		Priority:       event.Priority,
	}

	sub := event.Subscription
	if event.Key.Kind == billing.KindOverdue {
		n.Title = "订阅已逾期"
		n.Message = fmt.Sprintf("%s 已逾期 %d 天，金额 ¥%.2f", sub.Name, -event.DaysUntilDue, sub.Amount)
		return n
	}

	n.Title = "订阅付款提醒"
	switch event.DaysUntilDue {
	case 0:
		n.Message = fmt.Sprintf("%s 将于今天扣款 ¥%.2f", sub.Name, sub.Amount)
	case 1:
		n.Message = fmt.Sprintf("%s 将于明天扣款 ¥%.2f", sub.Name, sub.Amount)
	default:
		n.Message = fmt.Sprintf("%s 将于 %d 天后扣款 ¥%.2f", sub.Name, event.DaysUntilDue, sub.Amount)
	}
	return n
}
