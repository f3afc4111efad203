package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/database"
	"github.com/subtrack/subtrack_go_server/internal/pkg/cron"
	"github.com/subtrack/subtrack_go_server/internal/pkg/email"
	"github.com/subtrack/subtrack_go_server/internal/pkg/pubsub"
	"github.com/subtrack/subtrack_go_server/internal/pkg/queue"
	"github.com/subtrack/subtrack_go_server/internal/repository"
	"github.com/subtrack/subtrack_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	emailQueue := queue.NewQueue(rdb, cfg.Queue.EmailQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository 和 Service
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	reminderService := service.NewReminderService(
		subRepo, notifRepo, settingsRepo, budgetRepo, userRepo, publisher, emailQueue)

	// 启动定时提醒任务
	cronService := cron.NewService(reminderService, cfg.Reminder.CheckIntervalHours)
	cronService.Start()
	defer cronService.Stop()

	// 邮件发送
	emailService := email.NewService(&cfg.Email)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	log.Printf("Worker started, max workers: %d", cfg.Queue.MaxWorkers)

	// 启动邮件消费循环
	for i := 0; i < cfg.Queue.MaxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := emailQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop message: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					if err := sendEmail(emailService, msg); err != nil {
						log.Printf("Worker %d: send email to %s failed: %v", workerID, msg.To, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
}

func sendEmail(emailService *email.Service, msg *queue.EmailMessage) error {
	switch msg.Kind {
	case queue.EmailPaymentReminder:
		return emailService.SendPaymentReminder(msg.To, msg.ServiceName, msg.Amount, msg.DueDate, msg.DaysUntilDue)
	case queue.EmailOverdueNotice:
		return emailService.SendOverdueNotice(msg.To, msg.ServiceName, msg.Amount, msg.DueDate, msg.DaysUntilDue)
	case queue.EmailBudgetAlert:
		return emailService.SendBudgetAlert(msg.To, msg.Threshold, msg.Percentage, msg.Spending, msg.Limit)
	default:
		log.Printf("Unknown email kind: %s", msg.Kind)
		return nil
	}
}
