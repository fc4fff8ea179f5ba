// Package llm provides a client for the hosted inference endpoint that powers
// the Creator assistant.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lumen-studio-go/internal/config"

	"github.com/gorilla/websocket"
)

// MessageWriter defines an interface for writing WebSocket messages.
// This allows both a standard websocket.Conn and our interceptor to be used.
type MessageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// Client defines the interface for an LLM client.
type Client interface {
	// StreamChatMessages 以 role-based 消息调用聊天接口，并将流式增量写入 writer。
	StreamChatMessages(ctx context.Context, messages []Message, gen *GenerationParams, writer MessageWriter) error
	// Complete 发送一次非流式请求并返回完整的回复文本（用于一次性生成，如场景规划）。
	Complete(ctx context.Context, messages []Message, gen *GenerationParams) (string, error)
}

type openAICompatibleClient struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewClient creates a new LLM client from the configured provider settings.
func NewClient(cfg config.LLMConfig) Client {
	return &openAICompatibleClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Message 表示一条角色消息。Content 为纯文本字符串，或当消息附带图片时为
// []ContentPart（multimodal 数组）。
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart 是 multimodal 消息数组中的一段内容。
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL 包装内联图片的地址（data URL 或外链）。
type ImageURL struct {
	URL string `json:"url"`
}

// TextMessage builds a plain text message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// ImageMessage builds a multimodal message carrying text plus one inline image.
func ImageMessage(role, text, imageURL string) Message {
	return Message{
		Role: role,
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		},
	}
}

// GenerationParams 控制生成行为。
type GenerationParams struct {
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorPayload 匹配接口失败时返回的 JSON 错误体（字符串或对象两种形态）。
type errorPayload struct {
	Error json.RawMessage `json:"error"`
}

// TransportError 表示一次聊天请求在产生任何增量之前整体失败。
// Message 优先取自服务端错误体，便于直接透出给用户。
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

const transportFallbackMessage = "AI 服务暂时不可用，请稍后重试"

// transportErrorFromBody extracts a human-readable message from an error
// response body, falling back to a generic message.
func transportErrorFromBody(body []byte) *TransportError {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Error) > 0 {
		var msg string
		if err := json.Unmarshal(payload.Error, &msg); err == nil && msg != "" {
			return &TransportError{Message: msg}
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &obj); err == nil && obj.Message != "" {
			return &TransportError{Message: obj.Message}
		}
	}
	return &TransportError{Message: transportFallbackMessage}
}

func (c *openAICompatibleClient) buildRequestBody(messages []Message, gen *GenerationParams, stream bool) chatRequest {
	reqBody := chatRequest{
		Model:    c.cfg.Model,
		Messages: messages,
		Stream:   stream,
	}
	// 从配置或传参注入生成参数（传参优先生效）
	if gen != nil {
		reqBody.Temperature = gen.Temperature
		reqBody.TopP = gen.TopP
		reqBody.MaxTokens = gen.MaxTokens
	} else {
		if c.cfg.Generation.Temperature != 0 {
			t := c.cfg.Generation.Temperature
			reqBody.Temperature = &t
		}
		if c.cfg.Generation.TopP != 0 {
			p := c.cfg.Generation.TopP
			reqBody.TopP = &p
		}
		if c.cfg.Generation.MaxTokens != 0 {
			m := c.cfg.Generation.MaxTokens
			reqBody.MaxTokens = &m
		}
	}
	return reqBody
}

func (c *openAICompatibleClient) newRequest(ctx context.Context, body chatRequest, stream bool) (*http.Request, error) {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	return req, nil
}

// StreamChatMessages calls the chat completions API and forwards each delta to
// the writer as it arrives. Deltas are written strictly in arrival order; a
// frame that carries no content produces no write.
func (c *openAICompatibleClient) StreamChatMessages(ctx context.Context, messages []Message, gen *GenerationParams, writer MessageWriter) error {
	req, err := c.newRequest(ctx, c.buildRequestBody(messages, gen, true), true)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Message: transportFallbackMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return transportErrorFromBody(bodyBytes)
	}

	// 逐块读取响应体：每个 chunk 喂给解码器，取出完整行后逐帧解析。
	// 行边界与 chunk 边界无关，多字节字符跨 chunk 也不会被破坏。
	dec := &streamDecoder{}
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, line := range dec.feed(buf[:n]) {
				delta, done, ok := parseFrame(line)
				if done {
					return nil
				}
				if ok && delta != "" {
					if err := writer.WriteMessage(websocket.TextMessage, []byte(delta)); err != nil {
						return fmt.Errorf("failed to write delta: %w", err)
					}
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return fmt.Errorf("failed to read from stream: %w", readErr)
		}
	}

	// 流在没有换行符收尾时结束：残留的尾行仍可能是一个完整帧。
	if tail := dec.tail(); tail != "" {
		delta, done, ok := parseFrame(tail)
		if !done && ok && delta != "" {
			if err := writer.WriteMessage(websocket.TextMessage, []byte(delta)); err != nil {
				return fmt.Errorf("failed to write delta: %w", err)
			}
		}
	}
	return nil
}

// Complete performs one non-streamed chat completion and returns the full text.
func (c *openAICompatibleClient) Complete(ctx context.Context, messages []Message, gen *GenerationParams) (string, error) {
	req, err := c.newRequest(ctx, c.buildRequestBody(messages, gen, false), false)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Message: transportFallbackMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", transportErrorFromBody(bodyBytes)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
