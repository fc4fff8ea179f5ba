// Package imagegen provides a client for the non-streamed image generation
// endpoint used by the Creator mockup directive.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/pkg/log"
)

// Client defines the interface for an image generation client.
type Client interface {
	// Generate 以提示词发起一次图片生成请求，返回图片引用（data URL 或外链）。
	Generate(ctx context.Context, prompt string) (string, error)
}

type httpClient struct {
	cfg    config.ImageGenConfig
	client *http.Client
}

// NewClient creates a new image generation client.
func NewClient(cfg config.ImageGenConfig) Client {
	return &httpClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type generateRequest struct {
	GenerateImage bool   `json:"generateImage"`
	ImagePrompt   string `json:"imagePrompt"`
}

type generateResponse struct {
	Image string `json:"image"`
	Error string `json:"error"`
}

// Generate calls the image endpoint once. The call is independent of the chat
// stream and is never retried automatically.
func (c *httpClient) Generate(ctx context.Context, prompt string) (string, error) {
	log.Infof("[ImageGen] 开始生成图片, prompt_len: %d", len(prompt))
	reqBytes, err := json.Marshal(generateRequest{GenerateImage: true, ImagePrompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/generate", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create image request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Errorf("[ImageGen] 调用图片生成接口失败: %v", err)
		return "", fmt.Errorf("failed to call image api: %w", err)
	}
	defer resp.Body.Close()

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}

	if parsed.Error != "" {
		return "", fmt.Errorf("image api error: %s", parsed.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image api returned non-200 status: %s", resp.Status)
	}
	if parsed.Image == "" {
		return "", fmt.Errorf("image api returned empty image")
	}

	log.Infof("[ImageGen] 图片生成成功, ref_len: %d", len(parsed.Image))
	return parsed.Image, nil
}
