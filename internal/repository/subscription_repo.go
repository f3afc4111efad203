package repository

import (
	"gorm.io/gorm"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *SubscriptionRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).Updates(fields).Error
}

func (r *SubscriptionRepository) Delete(id int64) error {
	return r.db.Delete(&model.Subscription{}, id).Error
}

func (r *SubscriptionRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Subscription{}).Error
}

// ListByUser 获取用户全部订阅，按创建时间升序保证查询结果顺序稳定
func (r *SubscriptionRepository) ListByUser(userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) ListByUserAndStatus(userID int64, status string) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, status).
		Order("created_at ASC, id ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) ListActiveByUser(userID int64) ([]*model.Subscription, error) {
	return r.ListByUserAndStatus(userID, model.StatusActive)
}

func (r *SubscriptionRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
