package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// OrderRepository 接口定义了委托订单的持久化操作。
type OrderRepository interface {
	Create(order *model.Order) error
	Update(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint, offset, limit int) ([]model.Order, int64, error)
	FindWithPagination(status string, offset, limit int) ([]model.Order, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建一个新的 OrderRepository 实例。
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) Update(order *model.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUserID 分页检索某个会员的全部订单。
func (r *orderRepository) FindByUserID(userID uint, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.Model(&model.Order{}).Where("user_id = ?", userID)

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindWithPagination 分页检索全部订单，status 为空时不过滤状态。
func (r *orderRepository) FindWithPagination(status string, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.Model(&model.Order{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
