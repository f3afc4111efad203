package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Create(s *model.ReminderSettings) error {
	return r.db.Create(s).Error
}

func (r *SettingsRepository) GetByUser(userID int64) (*model.ReminderSettings, error) {
	var s model.ReminderSettings
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) Update(s *model.ReminderSettings) error {
	return r.db.Save(s).Error
}

// UpdateLastCheck 记录最近一次提醒评估时间
func (r *SettingsRepository) UpdateLastCheck(userID int64, checkedAt time.Time) error {
	return r.db.Model(&model.ReminderSettings{}).
		Where("user_id = ?", userID).
		Update("last_check_at", checkedAt).Error
}

// ListEnabled 返回开启提醒的全部用户设置（定时评估的遍历入口）
func (r *SettingsRepository) ListEnabled() ([]*model.ReminderSettings, error) {
	var list []*model.ReminderSettings
	err := r.db.Where("enabled = ?", true).Find(&list).Error
	return list, err
}
