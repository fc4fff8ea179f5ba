package model

import "time"

// PaymentSetting 对应于数据库中的 'payment_settings' 表（单行配置）。
// SecretKey 不会出现在任何 JSON 响应中。
type PaymentSetting struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Provider       string    `gorm:"type:varchar(50);not null" json:"provider"`
	PublishableKey string    `gorm:"type:varchar(255)" json:"publishableKey"`
	SecretKey      string    `gorm:"type:varchar(255)" json:"-"`
	Currency       string    `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`
	Enabled        bool      `gorm:"not null;default:false" json:"enabled"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (PaymentSetting) TableName() string {
	return "payment_settings"
}
