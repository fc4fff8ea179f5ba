package repository

import (
	"errors"

	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// PaymentRepository 接口定义了支付配置（单行）的持久化操作。
type PaymentRepository interface {
	Get() (*model.PaymentSetting, error)
	Save(setting *model.PaymentSetting) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建一个新的 PaymentRepository 实例。
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Get 读取支付配置，不存在时返回禁用状态的默认值。
func (r *paymentRepository) Get() (*model.PaymentSetting, error) {
	var setting model.PaymentSetting
	err := r.db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.PaymentSetting{Currency: "USD", Enabled: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Save 写入支付配置，始终覆盖同一行。
func (r *paymentRepository) Save(setting *model.PaymentSetting) error {
	setting.ID = 1
	return r.db.Save(setting).Error
}
