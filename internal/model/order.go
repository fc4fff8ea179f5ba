package model

import "time"

// 订单状态取值。状态推进由管理员操作，推进时会给会员产生一条通知。
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusReview     = "review"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order 对应于数据库中的 'orders' 表，即会员的委托订单。
type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Brief       string    `gorm:"type:text" json:"brief"`
	AmountCents int64     `gorm:"not null;default:0" json:"amountCents"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Order) TableName() string {
	return "orders"
}

// ValidOrderStatus 判断给定状态是否为合法的订单状态。
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReview,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
