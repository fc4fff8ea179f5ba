package model

import "time"

// Creation 对应于数据库中的 'creations' 表。
// 会员可以把 Creator 的一轮产出（文本与可选 mockup 图）显式保存下来；
// 未保存的对话只存在于 Redis 会话历史中。
type Creation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"type:varchar(512)" json:"imageUrl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Creation) TableName() string {
	return "creations"
}
