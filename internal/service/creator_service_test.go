package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/pkg/llm"
	"lumen-studio-go/pkg/log"
)

func TestMain(m *testing.M) {
	log.Init("error", "console", "")
	m.Run()
}

// fakeConversationRepo 是 ConversationRepository 的内存实现。
type fakeConversationRepo struct {
	mu        sync.Mutex
	histories map[string][]model.ChatMessage
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{histories: make(map[string][]model.ChatMessage)}
}

func (f *fakeConversationRepo) GetOrCreateConversationID(ctx context.Context, userID uint) (string, error) {
	return "conv-1", nil
}

func (f *fakeConversationRepo) ResetConversation(ctx context.Context, userID uint) (string, error) {
	return "conv-2", nil
}

func (f *fakeConversationRepo) GetConversationHistory(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ChatMessage(nil), f.histories[conversationID]...), nil
}

func (f *fakeConversationRepo) UpdateConversationHistory(ctx context.Context, conversationID string, messages []model.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histories[conversationID] = append([]model.ChatMessage(nil), messages...)
	return nil
}

// stubLLMClient 按配置回放增量，或在开始前整体失败。
type stubLLMClient struct {
	deltas  []string
	err     error
	started chan struct{} // 非 nil 时：流开始后关闭
	release chan struct{} // 非 nil 时：收到信号前不结束
}

func (s *stubLLMClient) StreamChatMessages(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams, writer llm.MessageWriter) error {
	if s.err != nil {
		return s.err
	}
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	for _, d := range s.deltas {
		if err := writer.WriteMessage(1, []byte(d)); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubLLMClient) Complete(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	return "", errors.New("not implemented")
}

// stubImageClient 记录收到的提示词并返回固定结果。
type stubImageClient struct {
	mu      sync.Mutex
	prompts []string
	url     string
	err     error
}

func (s *stubImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

// recordingConn 收集下发给前端的全部 JSON 帧。
type recordingConn struct {
	mu     sync.Mutex
	frames [][]byte
}

func (r *recordingConn) WriteMessage(messageType int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, append([]byte(nil), data...))
	return nil
}

type frame struct {
	Type    string            `json:"type"`
	Content string            `json:"content"`
	Message model.ChatMessage `json:"message"`
}

func (r *recordingConn) decoded(t *testing.T) []frame {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]frame, 0, len(r.frames))
	for _, b := range r.frames {
		var f frame
		if err := json.Unmarshal(b, &f); err != nil {
			t.Fatalf("无法解析下发帧 %q: %v", b, err)
		}
		out = append(out, f)
	}
	return out
}

func (r *recordingConn) byType(t *testing.T, typ string) []frame {
	var out []frame
	for _, f := range r.decoded(t) {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

func testUser() *model.User {
	return &model.User{ID: 7, Username: "ada", Role: "USER"}
}

func TestStreamResponseForwardsChunksAndGeneratesMockup(t *testing.T) {
	repo := newFakeConversationRepo()
	llmStub := &stubLLMClient{deltas: []string{"Sure, ", "here is one. ", "[GENERATE_MOCKUP: vintage jazz poster]"}}
	imgStub := &stubImageClient{url: "https://cdn.example.com/mockups/42.png"}
	svc := NewCreatorService(llmStub, imgStub, repo)

	conn := &recordingConn{}
	err := svc.StreamResponse(context.Background(), ChatInput{Text: "design me a poster"}, testUser(), conn, nil)
	if err != nil {
		t.Fatalf("StreamResponse 返回错误: %v", err)
	}

	// 文本增量逐帧下发
	var streamed strings.Builder
	for _, f := range conn.byType(t, "chunk") {
		streamed.WriteString(f.Content)
	}
	if got := streamed.String(); got != "Sure, here is one. [GENERATE_MOCKUP: vintage jazz poster]" {
		t.Errorf("下发增量拼接结果不符: %q", got)
	}

	// 指令提示词原样交给图片生成
	if len(imgStub.prompts) != 1 || imgStub.prompts[0] != "vintage jazz poster" {
		t.Errorf("图片提示词不符: %v", imgStub.prompts)
	}

	// 两次 message_update：先是生成中，随后带上生成的图片
	updates := conn.byType(t, "message_update")
	if len(updates) != 2 {
		t.Fatalf("期望 2 个 message_update，实际 %d", len(updates))
	}
	first, second := updates[0].Message, updates[1].Message
	if first.Content != "Sure, here is one." || !first.IsGeneratingImage {
		t.Errorf("首次更新不符: content=%q generating=%v", first.Content, first.IsGeneratingImage)
	}
	if second.IsGeneratingImage || second.GeneratedImage != "https://cdn.example.com/mockups/42.png" {
		t.Errorf("最终更新不符: generating=%v image=%q", second.IsGeneratingImage, second.GeneratedImage)
	}

	// Redis 历史：user + assistant，assistant 存的是展示文本
	history, _ := repo.GetConversationHistory(context.Background(), "conv-1")
	if len(history) != 2 {
		t.Fatalf("期望历史 2 条，实际 %d", len(history))
	}
	if history[0].Role != "user" || history[0].Content != "design me a poster" {
		t.Errorf("用户消息不符: %+v", history[0])
	}
	if history[1].Content != "Sure, here is one." || history[1].GeneratedImage == "" {
		t.Errorf("助手消息不符: %+v", history[1])
	}
}

func TestStreamResponseImageFailureKeepsText(t *testing.T) {
	repo := newFakeConversationRepo()
	llmStub := &stubLLMClient{deltas: []string{"Here you go. [GENERATE_MOCKUP: a red fox logo]"}}
	imgStub := &stubImageClient{err: errors.New("image backend down")}
	svc := NewCreatorService(llmStub, imgStub, repo)

	conn := &recordingConn{}
	err := svc.StreamResponse(context.Background(), ChatInput{Text: "logo please"}, testUser(), conn, nil)
	if err != nil {
		t.Fatalf("图片失败不应让整轮失败: %v", err)
	}

	updates := conn.byType(t, "message_update")
	if len(updates) != 2 {
		t.Fatalf("期望 2 个 message_update，实际 %d", len(updates))
	}
	final := updates[1].Message
	if final.Content != "Here you go." {
		t.Errorf("文本应保留: %q", final.Content)
	}
	if final.IsGeneratingImage || final.GeneratedImage != "" {
		t.Errorf("图片失败后应只翻回生成标志: generating=%v image=%q", final.IsGeneratingImage, final.GeneratedImage)
	}

	history, _ := repo.GetConversationHistory(context.Background(), "conv-1")
	if len(history) != 2 || history[1].IsGeneratingImage {
		t.Errorf("历史应保存最终状态: %+v", history)
	}
}

func TestStreamResponseRejectsConcurrentTurn(t *testing.T) {
	repo := newFakeConversationRepo()
	started := make(chan struct{})
	release := make(chan struct{})
	llmStub := &stubLLMClient{deltas: []string{"hello"}, started: started, release: release}
	svc := NewCreatorService(llmStub, &stubImageClient{}, repo)

	user := testUser()
	done := make(chan error, 1)
	go func() {
		done <- svc.StreamResponse(context.Background(), ChatInput{Text: "first"}, user, &recordingConn{}, nil)
	}()

	<-started
	err := svc.StreamResponse(context.Background(), ChatInput{Text: "second"}, user, &recordingConn{}, nil)
	if !errors.Is(err, ErrTurnInFlight) {
		t.Errorf("并发第二轮应被拒绝，实际: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("第一轮应正常完成: %v", err)
	}

	// 第一轮结束后允许新的一轮
	llmStub.started = nil
	llmStub.release = nil
	if err := svc.StreamResponse(context.Background(), ChatInput{Text: "third"}, user, &recordingConn{}, nil); err != nil {
		t.Errorf("上一轮结束后应可继续: %v", err)
	}
}

func TestStreamResponseTransportErrorDiscardsTurn(t *testing.T) {
	repo := newFakeConversationRepo()
	llmStub := &stubLLMClient{err: &llm.TransportError{Message: "quota exceeded"}}
	svc := NewCreatorService(llmStub, &stubImageClient{}, repo)

	conn := &recordingConn{}
	err := svc.StreamResponse(context.Background(), ChatInput{Text: "hi"}, testUser(), conn, nil)
	if err == nil {
		t.Fatal("传输失败应向调用方返回错误")
	}

	var raw map[string]interface{}
	if len(conn.frames) == 0 {
		t.Fatal("应下发错误通知帧")
	}
	if err := json.Unmarshal(conn.frames[len(conn.frames)-1], &raw); err != nil {
		t.Fatalf("无法解析错误帧: %v", err)
	}
	if raw["type"] != "error" || raw["message"] != "quota exceeded" {
		t.Errorf("错误帧不符: %v", raw)
	}

	// 本轮不落任何历史
	history, _ := repo.GetConversationHistory(context.Background(), "conv-1")
	if len(history) != 0 {
		t.Errorf("传输失败不应保存历史: %+v", history)
	}
}

func TestComposeMessagesIncludesHistoryAndImages(t *testing.T) {
	svc := &creatorService{}
	history := []model.ChatMessage{
		{Role: "user", Content: "look at this", AttachedImage: "data:image/png;base64,AAA", Timestamp: time.Now()},
		{Role: "assistant", Content: "Nice palette."},
	}
	msgs := svc.composeMessages(history, ChatInput{Text: "more like it", AttachedImage: "data:image/png;base64,BBB"})

	if len(msgs) != 4 {
		t.Fatalf("期望 4 条消息，实际 %d", len(msgs))
	}
	if msgs[0].Role != "system" {
		t.Errorf("首条应为 system 消息: %+v", msgs[0])
	}
	// 附带图片的消息转为 multimodal 数组
	if _, ok := msgs[1].Content.([]llm.ContentPart); !ok {
		t.Errorf("带图历史消息应为数组形态: %T", msgs[1].Content)
	}
	if _, ok := msgs[2].Content.(string); !ok {
		t.Errorf("纯文本历史消息应为字符串形态: %T", msgs[2].Content)
	}
	if parts, ok := msgs[3].Content.([]llm.ContentPart); !ok || len(parts) != 2 {
		t.Errorf("本轮带图输入应为两段数组: %+v", msgs[3].Content)
	}
}
