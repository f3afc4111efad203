package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subtrack/subtrack_go_server/internal/model"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(b *model.Budget) error {
	return r.db.Create(b).Error
}

func (r *BudgetRepository) GetByUser(userID int64) (*model.Budget, error) {
	var b model.Budget
	err := r.db.Where("user_id = ?", userID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Update(b *model.Budget) error {
	return r.db.Save(b).Error
}

// UpsertCategory 写入或更新分类预算
func (r *BudgetRepository) UpsertCategory(cb *model.CategoryBudget) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_limit", "updated_at"}),
	}).Create(cb).Error
}

func (r *BudgetRepository) ListCategories(userID int64) ([]*model.CategoryBudget, error) {
	var list []*model.CategoryBudget
	err := r.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&list).Error
	return list, err
}

func (r *BudgetRepository) DeleteCategory(userID int64, category string) error {
	return r.db.Where("user_id = ? AND category = ?", userID, category).
		Delete(&model.CategoryBudget{}).Error
}
