package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// SubscriptionRepository 接口定义了会员订阅计划的持久化操作。
type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	Update(sub *model.Subscription) error
	FindByID(id uint) (*model.Subscription, error)
	FindActiveByUserID(userID uint) (*model.Subscription, error)
	FindByUserID(userID uint) ([]model.Subscription, error)
	FindWithPagination(status string, offset, limit int) ([]model.Subscription, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository 创建一个新的 SubscriptionRepository 实例。
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *subscriptionRepository) FindByID(id uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindActiveByUserID 查找会员当前生效中的订阅。
func (r *subscriptionRepository) FindActiveByUserID(userID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, model.SubscriptionStatusActive).
		Order("id DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// FindByUserID 检索会员的全部订阅记录（含历史）。
func (r *subscriptionRepository) FindByUserID(userID uint) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&subs).Error
	return subs, err
}

// FindWithPagination 分页检索全部订阅，status 为空时不过滤状态。
func (r *subscriptionRepository) FindWithPagination(status string, offset, limit int) ([]model.Subscription, int64, error) {
	var subs []model.Subscription
	var total int64

	db := r.db.Model(&model.Subscription{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}
