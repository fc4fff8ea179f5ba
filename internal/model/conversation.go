package model

import "time"

// ChatMessage 代表存储在 Redis 中的单条 Creator 对话消息。
// 流式生成期间 Content 单调增长；IsGeneratingImage 在图片往返前后 true→false。
type ChatMessage struct {
	Role              string    `json:"role"` // "user" 或 "assistant"
	Content           string    `json:"content"`
	AttachedImage     string    `json:"attachedImage,omitempty"`  // 用户随消息附带的内联图片（data URL）
	GeneratedImage    string    `json:"generatedImage,omitempty"` // 指令触发生成的图片引用
	IsGeneratingImage bool      `json:"isGeneratingImage"`
	Timestamp         time.Time `json:"timestamp"`
}
