package model

import "time"

// Work 对应于数据库中的 'works' 表，即对外展示的作品集条目。
type Work struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Category    string     `gorm:"type:varchar(50)" json:"category"` // branding / web / film / print ...
	Summary     string     `gorm:"type:varchar(512)" json:"summary"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverURL    string     `gorm:"type:varchar(512)" json:"coverUrl"`
	Highlight   bool       `gorm:"not null;default:false" json:"highlight"` // 首页精选
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	PublishedAt *time.Time `gorm:"default:null" json:"publishedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Work) TableName() string {
	return "works"
}
