package service

import (
	"errors"
	"fmt"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/log"
)

// OrderService 接口定义了委托订单的业务操作。
type OrderService interface {
	Create(userID uint, title, brief string, amountCents int64) (*model.Order, error)
	ListByUser(userID uint, page, size int) ([]model.Order, int64, error)
	GetForUser(userID, orderID uint) (*model.Order, error)
	ListAll(status string, page, size int) ([]model.Order, int64, error)
	UpdateStatus(orderID uint, status string) (*model.Order, error)
}

type orderService struct {
	orderRepo        repository.OrderRepository
	notificationRepo repository.NotificationRepository
}

// NewOrderService 创建一个新的 OrderService 实例。
func NewOrderService(orderRepo repository.OrderRepository, notificationRepo repository.NotificationRepository) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
	}
}

// Create 创建一个新的委托订单，初始状态为 pending。
func (s *orderService) Create(userID uint, title, brief string, amountCents int64) (*model.Order, error) {
	if title == "" {
		return nil, errors.New("订单标题不能为空")
	}
	order := &model.Order{
		UserID:      userID,
		Title:       title,
		Brief:       brief,
		AmountCents: amountCents,
		Status:      model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListByUser(userID uint, page, size int) ([]model.Order, int64, error) {
	return s.orderRepo.FindByUserID(userID, (page-1)*size, size)
}

// GetForUser 获取会员自己的订单，他人订单视为不存在。
func (s *orderService) GetForUser(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (s *orderService) ListAll(status string, page, size int) ([]model.Order, int64, error) {
	return s.orderRepo.FindWithPagination(status, (page-1)*size, size)
}

// UpdateStatus 由管理员推进订单状态，并给订单所属会员发一条站内通知。
func (s *orderService) UpdateStatus(orderID uint, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("非法的订单状态: %s", status)
	}
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID: order.UserID,
		Kind:   model.NotificationKindOrder,
		Title:  fmt.Sprintf("订单「%s」状态更新", order.Title),
		Body:   fmt.Sprintf("您的订单当前状态：%s", status),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		// 通知失败不影响状态变更本身
		log.Errorf("创建订单通知失败: orderID=%d, error: %v", orderID, err)
	}

	return order, nil
}
