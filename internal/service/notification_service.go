package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

var ErrNotificationNotFound = errors.New("通知不存在")

type NotificationService struct {
	notifRepo *repository.NotificationRepository
}

func NewNotificationService(notifRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// List 获取用户全部通知，按创建时间倒序
func (s *NotificationService) List(userID int64, unreadOnly bool) ([]*model.Notification, error) {
	if unreadOnly {
		return s.notifRepo.ListUnreadByUser(userID)
	}
	return s.notifRepo.ListByUser(userID)
}

// UnreadCount 未读通知数
func (s *NotificationService) UnreadCount(userID int64) (int64, error) {
	return s.notifRepo.UnreadCount(userID)
}

// MarkRead 标记单条通知已读
func (s *NotificationService) MarkRead(id, userID int64) error {
	if err := s.ensureOwned(id, userID); err != nil {
		return err
	}
	return s.notifRepo.MarkRead(id, userID)
}

// MarkAllRead 标记全部已读
func (s *NotificationService) MarkAllRead(userID int64) error {
	return s.notifRepo.MarkAllRead(userID)
}

// Delete 删除单条通知
func (s *NotificationService) Delete(id, userID int64) error {
	if err := s.ensureOwned(id, userID); err != nil {
		return err
	}
	return s.notifRepo.Delete(id, userID)
}

// Clear 清空用户全部通知
func (s *NotificationService) Clear(userID int64) error {
	return s.notifRepo.ClearByUser(userID)
}

func (s *NotificationService) ensureOwned(id, userID int64) error {
	n, err := s.notifRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrNoPermission
	}
	return nil
}
