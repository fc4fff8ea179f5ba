// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

// 内容类型取值，与 Elasticsearch 文档中的 content_type 字段一致。
const (
	ContentTypeWork = "work"
	ContentTypePost = "post"
)

// ContentIndexTask represents an index (or de-index) job for one piece of
// published content.
type ContentIndexTask struct {
	ContentType string `json:"content_type"` // "work" 或 "post"
	ContentID   uint   `json:"content_id"`
	Remove      bool   `json:"remove"` // true 表示从索引中删除（下架/取消发布）
}
