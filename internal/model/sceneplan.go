package model

import "time"

// ScenePlan 对应于数据库中的 'scene_plans' 表，即会员的拍摄场景规划。
// Scenes 以 JSON 文本存储场景列表，由前端与生成接口直接消费。
type ScenePlan struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Brief     string    `gorm:"type:text" json:"brief"`
	Scenes    string    `gorm:"type:text" json:"scenes"`
	Status    string    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"` // draft / final
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ScenePlan) TableName() string {
	return "scene_plans"
}
