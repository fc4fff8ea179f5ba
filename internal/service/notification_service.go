package service

import (
	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
)

// NotificationService 接口定义了站内通知的业务操作。
type NotificationService interface {
	List(userID uint, page, size int) ([]model.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) error
	MarkAllRead(userID uint) error
	Notify(userID uint, kind, title, body string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService 创建一个新的 NotificationService 实例。
func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(userID uint, page, size int) ([]model.Notification, int64, error) {
	return s.notificationRepo.FindByUserID(userID, (page-1)*size, size)
}

func (s *notificationService) CountUnread(userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

func (s *notificationService) MarkRead(userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(userID, notificationID)
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// Notify 给指定会员写入一条站内通知。
func (s *notificationService) Notify(userID uint, kind, title, body string) error {
	return s.notificationRepo.Create(&model.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	})
}
