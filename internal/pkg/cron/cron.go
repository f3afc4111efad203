package cron

import (
	"context"
	"log"
	"time"

	"github.com/subtrack/subtrack_go_server/internal/service"
)

// Service 定时提醒任务：启动时立即跑一轮全量评估，之后按固定间隔重复。
// 评估本身是幂等的，重复执行不会产生重复通知。
type Service struct {
	reminderService *service.ReminderService
	interval        time.Duration
	stopChan        chan struct{}
}

func NewService(reminderService *service.ReminderService, intervalHours int) *Service {
	if intervalHours <= 0 {
		intervalHours = 1
	}
	return &Service{
		reminderService: reminderService,
		interval:        time.Duration(intervalHours) * time.Hour,
		stopChan:        make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.run()
	log.Printf("Cron service started (reminder check every %s)", s.interval)
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) run() {
	s.checkAll()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.checkAll()
		}
	}
}

func (s *Service) checkAll() {
	log.Println("Starting reminder check...")
	if err := s.reminderService.CheckAll(context.Background()); err != nil {
		log.Printf("Reminder check failed: %v", err)
		return
	}
	log.Println("Reminder check completed")
}

// RunNow 立即执行一轮评估（用于测试或手动触发）
func (s *Service) RunNow() error {
	log.Println("Manual reminder check triggered...")
	return s.reminderService.CheckAll(context.Background())
}
