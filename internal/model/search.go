package model

import "time"

// EsDocument 代表存储在 Elasticsearch 检索索引中的一条公开内容。
type EsDocument struct {
	DocID       string     `json:"doc_id"` // 唯一标识，例如 "work:12"
	ContentType string     `json:"content_type"`
	ContentID   uint       `json:"content_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"published_at"`
}

// SearchResponseDTO 定义了返回给前端的搜索结果结构。
type SearchResponseDTO struct {
	ContentType string  `json:"contentType"`
	ContentID   uint    `json:"contentId"`
	Title       string  `json:"title"`
	Snippet     string  `json:"snippet"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
}
