package model

import "time"

// Post 对应于数据库中的 'posts' 表，即博客文章。
type Post struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:varchar(512)" json:"excerpt"`
	Body        string     `gorm:"type:text" json:"body"`
	CoverURL    string     `gorm:"type:varchar(512)" json:"coverUrl"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	PublishedAt *time.Time `gorm:"default:null" json:"publishedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Post) TableName() string {
	return "posts"
}
