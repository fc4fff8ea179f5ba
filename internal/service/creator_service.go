// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/imagegen"
	"lumen-studio-go/pkg/llm"
	"lumen-studio-go/pkg/log"

	"github.com/gorilla/websocket"
)

// ErrTurnInFlight 表示该用户已有一轮生成正在进行，新消息被拒绝。
var ErrTurnInFlight = errors.New("a response is already being generated")

const defaultCreatorSystemPrompt = "You are Creator, the in-house design assistant of Lumen Studio. " +
	"Help members explore branding, layout and visual ideas. " +
	"When the member asks for a visual mockup, end your reply with a directive of the form " +
	"[GENERATE_MOCKUP: <image prompt>] describing the image to produce."

// ChatInput 是会员发来的一条 Creator 消息。
type ChatInput struct {
	Text          string
	AttachedImage string // data URL，可为空
}

// CreatorService 定义了 Creator 对话的操作接口。
type CreatorService interface {
	StreamResponse(ctx context.Context, input ChatInput, user *model.User, ws llm.MessageWriter, shouldStop func() bool) error
	GetHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error)
	ResetConversation(ctx context.Context, userID uint) error
}

type creatorService struct {
	llmClient        llm.Client
	imageClient      imagegen.Client
	conversationRepo repository.ConversationRepository

	// 每个用户同一时间只允许一轮生成
	inFlight sync.Map // userID -> struct{}
}

// NewCreatorService 创建一个新的 CreatorService 实例。
func NewCreatorService(llmClient llm.Client, imageClient imagegen.Client, conversationRepo repository.ConversationRepository) CreatorService {
	return &creatorService{
		llmClient:        llmClient,
		imageClient:      imageClient,
		conversationRepo: conversationRepo,
	}
}

// StreamResponse 执行一轮完整的 Creator 对话：流式下发文本增量，流结束后提取
// mockup 指令、触发图片生成，并把最终消息持久化到 Redis 会话历史。
func (s *creatorService) StreamResponse(ctx context.Context, input ChatInput, user *model.User, ws llm.MessageWriter, shouldStop func() bool) error {
	// 1. 单飞保护：同一用户上一轮未结束时直接拒绝
	if _, loaded := s.inFlight.LoadOrStore(user.ID, struct{}{}); loaded {
		return ErrTurnInFlight
	}
	defer s.inFlight.Delete(user.ID)

	// 2. 组装消息：system + 历史 + 本轮用户输入
	convID, err := s.conversationRepo.GetOrCreateConversationID(ctx, user.ID)
	if err != nil {
		return err
	}
	history, err := s.conversationRepo.GetConversationHistory(ctx, convID)
	if err != nil {
		log.Errorf("Failed to load conversation history: %v", err)
		history = []model.ChatMessage{}
	}
	messages := s.composeMessages(history, input)

	// 拦截 websocket writer 以捕获完整答案，并包装为 JSON 分块
	answerBuilder := &strings.Builder{}
	interceptor := &wsWriterInterceptor{conn: ws, writer: answerBuilder, shouldStop: shouldStop}

	// 3. 调用 LLM 客户端流式传输。传输失败时本轮不落任何历史（用户输入也丢弃），
	//    仅向前端下发错误通知。
	err = s.llmClient.StreamChatMessages(ctx, messages, nil, interceptor)
	if err != nil {
		var te *llm.TransportError
		if errors.As(err, &te) {
			sendError(ws, te.Message)
		}
		return err
	}

	// 4. 流结束：提取 mockup 指令，得到展示文本与图片提示词
	fullAnswer := answerBuilder.String()
	prompt, cleaned, found := llm.ExtractMockupDirective(fullAnswer)

	assistantMsg := model.ChatMessage{
		Role:              "assistant",
		Content:           cleaned,
		IsGeneratingImage: found,
		Timestamp:         time.Now(),
	}

	// 5. 持久化本轮对话并通知前端最终文本。使用后台上下文，
	//    即使原始请求被取消也希望保存成功生成的答案。
	userMsg := model.ChatMessage{
		Role:          "user",
		Content:       input.Text,
		AttachedImage: input.AttachedImage,
		Timestamp:     time.Now(),
	}
	history = append(history, userMsg, assistantMsg)
	if err := s.conversationRepo.UpdateConversationHistory(context.Background(), convID, history); err != nil {
		log.Errorf("Failed to save conversation history: %v", err)
	}
	sendMessageUpdate(ws, assistantMsg)
	sendCompletion(ws)

	// 6. 指令存在时进行图片生成。图片失败不影响已下发的文本，
	//    只把 isGeneratingImage 翻回 false。
	if found {
		imageURL, genErr := s.imageClient.Generate(context.Background(), prompt)
		assistantMsg.IsGeneratingImage = false
		if genErr != nil {
			log.Errorf("Mockup generation failed for user %d: %v", user.ID, genErr)
		} else {
			assistantMsg.GeneratedImage = imageURL
		}
		history[len(history)-1] = assistantMsg
		if err := s.conversationRepo.UpdateConversationHistory(context.Background(), convID, history); err != nil {
			log.Errorf("Failed to save conversation history: %v", err)
		}
		sendMessageUpdate(ws, assistantMsg)
	}

	return nil
}

// GetHistory 返回用户当前对话的全部消息。
func (s *creatorService) GetHistory(ctx context.Context, userID uint) ([]model.ChatMessage, error) {
	convID, err := s.conversationRepo.GetOrCreateConversationID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conversationRepo.GetConversationHistory(ctx, convID)
}

// ResetConversation 为用户开启一个全新的对话。
func (s *creatorService) ResetConversation(ctx context.Context, userID uint) error {
	_, err := s.conversationRepo.ResetConversation(ctx, userID)
	return err
}

// composeMessages 把 system 提示、Redis 历史与本轮输入转换成 LLM 消息序列。
// 附带图片的消息转为 multimodal 数组形态。
func (s *creatorService) composeMessages(history []model.ChatMessage, input ChatInput) []llm.Message {
	systemPrompt := config.Conf.LLM.Prompt.CreatorSystem
	if systemPrompt == "" {
		systemPrompt = defaultCreatorSystemPrompt
	}

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.TextMessage("system", systemPrompt))
	for _, m := range history {
		if m.Role == "user" && m.AttachedImage != "" {
			msgs = append(msgs, llm.ImageMessage(m.Role, m.Content, m.AttachedImage))
		} else {
			msgs = append(msgs, llm.TextMessage(m.Role, m.Content))
		}
	}
	if input.AttachedImage != "" {
		msgs = append(msgs, llm.ImageMessage("user", input.Text, input.AttachedImage))
	} else {
		msgs = append(msgs, llm.TextMessage("user", input.Text))
	}
	return msgs
}

// wsWriterInterceptor 是对 websocket 连接的封装，用于捕获写入的消息。
type wsWriterInterceptor struct {
	conn       llm.MessageWriter
	writer     *strings.Builder
	shouldStop func() bool
}

// WriteMessage 满足 llm.MessageWriter 接口。
func (w *wsWriterInterceptor) WriteMessage(messageType int, data []byte) error {
	w.writer.Write(data)
	if w.shouldStop != nil && w.shouldStop() {
		// 停止标志生效：继续累积但跳过下发
		return nil
	}
	// 将原始分块包装成 {"type":"chunk","content":"..."}
	payload := map[string]string{"type": "chunk", "content": string(data)}
	b, _ := json.Marshal(payload)
	return w.conn.WriteMessage(messageType, b)
}

// sendMessageUpdate 下发助手消息的最终（或图片阶段更新后的）形态。
func sendMessageUpdate(ws llm.MessageWriter, msg model.ChatMessage) {
	notif := map[string]interface{}{
		"type":    "message_update",
		"message": msg,
	}
	b, _ := json.Marshal(notif)
	_ = ws.WriteMessage(websocket.TextMessage, b)
}

// sendError 下发错误通知 JSON。
func sendError(ws llm.MessageWriter, message string) {
	notif := map[string]interface{}{
		"type":    "error",
		"message": message,
	}
	b, _ := json.Marshal(notif)
	_ = ws.WriteMessage(websocket.TextMessage, b)
}

// sendCompletion 发送完成通知 JSON。
func sendCompletion(ws llm.MessageWriter) {
	notif := map[string]interface{}{
		"type":      "completion",
		"status":    "finished",
		"timestamp": time.Now().UnixMilli(),
	}
	b, _ := json.Marshal(notif)
	_ = ws.WriteMessage(websocket.TextMessage, b)
}
