package model

import "time"

// 订阅状态取值。
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription 对应于数据库中的 'subscriptions' 表，即会员订阅计划。
type Subscription struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"userId"`
	PlanName   string     `gorm:"type:varchar(100);not null" json:"planName"`
	PriceCents int64      `gorm:"not null;default:0" json:"priceCents"`
	Status     string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active / paused / cancelled
	RenewsAt   *time.Time `gorm:"default:null" json:"renewsAt"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Subscription) TableName() string {
	return "subscriptions"
}
