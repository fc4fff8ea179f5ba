package model

import "time"

// NewsletterSubscriber 对应于数据库中的 'newsletter_subscribers' 表。
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Confirmed bool      `gorm:"not null;default:true" json:"confirmed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// Campaign 对应于数据库中的 'campaigns' 表，即一次邮件推送。
type Campaign struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject        string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body           string     `gorm:"type:text" json:"body"`
	RecipientCount int        `gorm:"not null;default:0" json:"recipientCount"`
	SentAt         *time.Time `gorm:"default:null" json:"sentAt"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Campaign) TableName() string {
	return "campaigns"
}
