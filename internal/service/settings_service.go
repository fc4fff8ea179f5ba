package service

import (
	"errors"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
)

// SettingsService 接口定义了站点支付配置的业务操作。
type SettingsService interface {
	GetPaymentSetting() (*model.PaymentSetting, error)
	UpdatePaymentSetting(provider, publishableKey, secretKey, currency string, enabled bool) (*model.PaymentSetting, error)
}

type settingsService struct {
	paymentRepo repository.PaymentRepository
}

// NewSettingsService 创建一个新的 SettingsService 实例。
func NewSettingsService(paymentRepo repository.PaymentRepository) SettingsService {
	return &settingsService{paymentRepo: paymentRepo}
}

func (s *settingsService) GetPaymentSetting() (*model.PaymentSetting, error) {
	return s.paymentRepo.Get()
}

// UpdatePaymentSetting 覆盖支付配置。secretKey 为空时保留原有密钥。
func (s *settingsService) UpdatePaymentSetting(provider, publishableKey, secretKey, currency string, enabled bool) (*model.PaymentSetting, error) {
	if enabled && provider == "" {
		return nil, errors.New("启用支付时必须指定支付服务商")
	}
	current, err := s.paymentRepo.Get()
	if err != nil {
		return nil, err
	}
	current.Provider = provider
	current.PublishableKey = publishableKey
	if secretKey != "" {
		current.SecretKey = secretKey
	}
	if currency != "" {
		current.Currency = currency
	}
	current.Enabled = enabled
	if err := s.paymentRepo.Save(current); err != nil {
		return nil, err
	}
	return current, nil
}
