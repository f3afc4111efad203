package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/model"
	"github.com/subtrack/subtrack_go_server/internal/model/dto"
	"github.com/subtrack/subtrack_go_server/internal/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	cfg          *config.Config
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, cfg *config.Config) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, cfg: cfg}
}

// Get 获取提醒设置，不存在时创建默认值
func (s *SettingsService) Get(userID int64) (*model.ReminderSettings, error) {
	settings, err := s.settingsRepo.GetByUser(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = &model.ReminderSettings{
		UserID:     userID,
		Enabled:    s.cfg.Reminder.DefaultEnabled,
		DaysBefore: s.cfg.Reminder.DefaultDaysBefore,
		Channel:    model.ChannelBrowser,
	}
	if err := s.settingsRepo.Create(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Update 更新提醒设置，零值字段保持不变
func (s *SettingsService) Update(userID int64, req *dto.UpdateSettingsRequest) (*model.ReminderSettings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	if req.DaysBefore != nil {
		settings.DaysBefore = *req.DaysBefore
	}
	if req.Channel != nil {
		settings.Channel = *req.Channel
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
