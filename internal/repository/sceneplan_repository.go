package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// ScenePlanRepository 接口定义了场景规划的持久化操作。
type ScenePlanRepository interface {
	Create(plan *model.ScenePlan) error
	Update(plan *model.ScenePlan) error
	Delete(userID, planID uint) error
	FindByID(userID, planID uint) (*model.ScenePlan, error)
	FindByUserID(userID uint) ([]model.ScenePlan, error)
}

type scenePlanRepository struct {
	db *gorm.DB
}

// NewScenePlanRepository 创建一个新的 ScenePlanRepository 实例。
func NewScenePlanRepository(db *gorm.DB) ScenePlanRepository {
	return &scenePlanRepository{db: db}
}

func (r *scenePlanRepository) Create(plan *model.ScenePlan) error {
	return r.db.Create(plan).Error
}

func (r *scenePlanRepository) Update(plan *model.ScenePlan) error {
	return r.db.Save(plan).Error
}

// Delete 删除会员自己的场景规划，user_id 条件防止越权。
func (r *scenePlanRepository) Delete(userID, planID uint) error {
	return r.db.Where("id = ? AND user_id = ?", planID, userID).Delete(&model.ScenePlan{}).Error
}

func (r *scenePlanRepository) FindByID(userID, planID uint) (*model.ScenePlan, error) {
	var plan model.ScenePlan
	err := r.db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *scenePlanRepository) FindByUserID(userID uint) ([]model.ScenePlan, error) {
	var plans []model.ScenePlan
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&plans).Error
	return plans, err
}
