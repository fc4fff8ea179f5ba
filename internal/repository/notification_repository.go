package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository 接口定义了站内通知的持久化操作。
type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByUserID(userID uint, offset, limit int) ([]model.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) error
	MarkAllRead(userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建一个新的 NotificationRepository 实例。
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// FindByUserID 分页检索会员的通知，按时间倒序。
func (r *notificationRepository) FindByUserID(userID uint, offset, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := r.db.Model(&model.Notification{}).Where("user_id = ?", userID)

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).Count(&total).Error
	return total, err
}

// MarkRead 将会员的单条通知标记为已读，user_id 条件防止越权。
func (r *notificationRepository) MarkRead(userID, notificationID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true).Error
}

func (r *notificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}
