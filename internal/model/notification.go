package model

import "time"

// 通知类型取值。
const (
	NotificationKindOrder   = "order"
	NotificationKindSystem  = "system"
	NotificationKindCreator = "creator"
)

// Notification 对应于数据库中的 'notifications' 表，即会员站内通知。
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Read      bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Notification) TableName() string {
	return "notifications"
}
