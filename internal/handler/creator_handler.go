package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"lumen-studio-go/internal/service"
	"lumen-studio-go/pkg/log"
	"lumen-studio-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// CreatorHandler 负责处理 Creator 助手的 WebSocket 连接与对话管理接口。
type CreatorHandler struct {
	creatorService service.CreatorService
	userService    service.UserService
	jwtManager     *token.JWTManager
	stopToken      string
	stopTokenLock  sync.Mutex
	// 每连接停止标志
	stopFlags sync.Map // key: session pointer string, value: bool
}

// NewCreatorHandler 创建一个新的 CreatorHandler。
func NewCreatorHandler(creatorService service.CreatorService, userService service.UserService, jwtManager *token.JWTManager) *CreatorHandler {
	return &CreatorHandler{
		creatorService: creatorService,
		userService:    userService,
		jwtManager:     jwtManager,
	}
}

// GetWebsocketStopToken 返回一个可用于停止流的令牌。
func (h *CreatorHandler) GetWebsocketStopToken(c *gin.Context) {
	h.stopTokenLock.Lock()
	defer h.stopTokenLock.Unlock()
	// 在真实的多服务器设置中，这应该在 Redis 中生成和存储
	h.stopToken = "WSS_STOP_CMD_" + token.GenerateRandomString(16)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"cmdToken": h.stopToken}})
}

// chatPayload 是前端通过 WebSocket 发来的一条 Creator 消息。
type chatPayload struct {
	Type          string `json:"type"`
	Text          string `json:"text"`
	AttachedImage string `json:"attachedImage"`
	CmdToken      string `json:"_internal_cmd_token"`
}

// Handle 处理一个传入的 WebSocket 连接。
func (h *CreatorHandler) Handle(c *gin.Context) {
	tokenString := c.Param("token")
	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "无效的 token", "data": nil})
		return
	}

	user, err := h.userService.GetProfile(claims.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "无法获取用户信息", "data": nil})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Infof("WebSocket 连接已建立，用户: %s", claims.Username)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		var payload chatPayload
		if err := json.Unmarshal(message, &payload); err != nil {
			// 非 JSON 消息按纯文本处理
			payload = chatPayload{Text: string(message)}
		}

		// 停止指令: {"type":"stop","_internal_cmd_token":"..."}
		if payload.Type == "stop" {
			h.stopTokenLock.Lock()
			valid := payload.CmdToken == h.stopToken
			h.stopTokenLock.Unlock()
			if valid {
				h.stopFlags.Store(sessionKey(conn), true)
				resp := map[string]interface{}{
					"type":      "stop",
					"message":   "响应已停止",
					"timestamp": time.Now().UnixMilli(),
				}
				b, _ := json.Marshal(resp)
				_ = conn.WriteMessage(websocket.TextMessage, b)
			}
			continue
		}

		if payload.Text == "" {
			continue
		}

		shouldStop := func() bool {
			v, ok := h.stopFlags.Load(sessionKey(conn))
			return ok && v.(bool)
		}
		// 清除旧标志
		h.stopFlags.Delete(sessionKey(conn))

		input := service.ChatInput{Text: payload.Text, AttachedImage: payload.AttachedImage}
		err = h.creatorService.StreamResponse(c.Request.Context(), input, user, conn, shouldStop)
		if err != nil {
			if errors.Is(err, service.ErrTurnInFlight) {
				// 上一轮还在生成，拒绝本条但保持连接
				resp := map[string]interface{}{"type": "error", "message": "上一条回复还在生成中，请稍候"}
				b, _ := json.Marshal(resp)
				_ = conn.WriteMessage(websocket.TextMessage, b)
				continue
			}
			log.Errorf("处理流式响应失败: %v", err)
			// 错误时也发送 completion 通知，让前端收尾
			resp := map[string]interface{}{
				"type":      "completion",
				"status":    "finished",
				"timestamp": time.Now().UnixMilli(),
			}
			b, _ := json.Marshal(resp)
			_ = conn.WriteMessage(websocket.TextMessage, b)
			break
		}
	}
}

// GetHistory 返回当前对话的全部消息。
func (h *CreatorHandler) GetHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	history, err := h.creatorService.GetHistory(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": history})
}

// ResetConversation 为当前用户开启一个全新的对话。
func (h *CreatorHandler) ResetConversation(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.creatorService.ResetConversation(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

func sessionKey(conn *websocket.Conn) string {
	return fmt.Sprintf("%p", conn)
}
