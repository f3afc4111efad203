package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 写入通知。dedup_key 冲突时静默忽略，配合唯一索引把
// 先查后插的竞态收敛为至多一条记录。返回是否实际插入。
func (r *NotificationRepository) Create(n *model.Notification) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedup_key"}},
		DoNothing: true,
	}).Create(n)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepository) GetByID(id int64) (*model.Notification, error) {
	var n model.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByUser 按创建时间倒序返回用户通知
func (r *NotificationRepository) ListByUser(userID int64) ([]*model.Notification, error) {
	var list []*model.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListUnreadByUser(userID int64) ([]*model.Notification, error) {
	var list []*model.Notification
	err := r.db.Where("user_id = ? AND `read` = ?", userID, false).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListDedupKeys 返回用户全部通知的去重键，用于评估前构建已存在集合
func (r *NotificationRepository) ListDedupKeys(userID int64) ([]string, error) {
	var keys []string
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ?", userID).
		Pluck("dedup_key", &keys).Error
	return keys, err
}

func (r *NotificationRepository) UnreadCount(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(id, userID int64) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID int64) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}

func (r *NotificationRepository) Delete(id, userID int64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Notification{}).Error
}

func (r *NotificationRepository) ClearByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Notification{}).Error
}

// DeleteReadBefore 删除指定时间之前的已读通知，返回删除条数（维护任务用）
func (r *NotificationRepository) DeleteReadBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("`read` = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
