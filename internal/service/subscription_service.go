package service

import (
	"errors"
	"time"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"

	"gorm.io/gorm"
)

// SubscriptionService 接口定义了会员订阅计划的业务操作。
type SubscriptionService interface {
	Subscribe(userID uint, planName string, priceCents int64) (*model.Subscription, error)
	GetCurrent(userID uint) (*model.Subscription, error)
	ListByUser(userID uint) ([]model.Subscription, error)
	Cancel(userID, subscriptionID uint) (*model.Subscription, error)
	ListAll(status string, page, size int) ([]model.Subscription, int64, error)
	SetStatus(subscriptionID uint, status string) (*model.Subscription, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

// NewSubscriptionService 创建一个新的 SubscriptionService 实例。
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

// Subscribe 为会员开通一个订阅计划。已有生效中的订阅时拒绝重复开通。
func (s *subscriptionService) Subscribe(userID uint, planName string, priceCents int64) (*model.Subscription, error) {
	if planName == "" {
		return nil, errors.New("订阅计划不能为空")
	}
	_, err := s.subscriptionRepo.FindActiveByUserID(userID)
	if err == nil {
		return nil, errors.New("已有生效中的订阅")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	renews := time.Now().AddDate(0, 1, 0)
	sub := &model.Subscription{
		UserID:     userID,
		PlanName:   planName,
		PriceCents: priceCents,
		Status:     model.SubscriptionStatusActive,
		RenewsAt:   &renews,
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) GetCurrent(userID uint) (*model.Subscription, error) {
	return s.subscriptionRepo.FindActiveByUserID(userID)
}

func (s *subscriptionService) ListByUser(userID uint) ([]model.Subscription, error) {
	return s.subscriptionRepo.FindByUserID(userID)
}

// Cancel 取消会员自己的订阅。
func (s *subscriptionService) Cancel(userID, subscriptionID uint) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByID(subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, errors.New("subscription not found")
	}
	sub.Status = model.SubscriptionStatusCancelled
	sub.RenewsAt = nil
	if err := s.subscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ListAll(status string, page, size int) ([]model.Subscription, int64, error) {
	return s.subscriptionRepo.FindWithPagination(status, (page-1)*size, size)
}

// SetStatus 由管理员调整任意订阅的状态。取消时清空续费时间。
func (s *subscriptionService) SetStatus(subscriptionID uint, status string) (*model.Subscription, error) {
	switch status {
	case model.SubscriptionStatusActive, model.SubscriptionStatusPaused, model.SubscriptionStatusCancelled:
	default:
		return nil, errors.New("非法的订阅状态")
	}
	sub, err := s.subscriptionRepo.FindByID(subscriptionID)
	if err != nil {
		return nil, err
	}
	sub.Status = status
	if status == model.SubscriptionStatusCancelled {
		sub.RenewsAt = nil
	}
	if err := s.subscriptionRepo.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}
