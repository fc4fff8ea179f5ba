package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CreationHandler 负责会员已保存创作的接口。
type CreationHandler struct {
	creationService service.CreationService
}

// NewCreationHandler 创建一个新的 CreationHandler 实例。
func NewCreationHandler(creationService service.CreationService) *CreationHandler {
	return &CreationHandler{creationService: creationService}
}

// SaveCreationRequest 定义了保存创作的请求体结构。
type SaveCreationRequest struct {
	Prompt   string `json:"prompt"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// Save 会员接口：把 Creator 的一轮产出保存为创作记录。
func (h *CreationHandler) Save(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req SaveCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	creation, err := h.creationService.Save(user.ID, req.Prompt, req.Content, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": creation})
}

// List 会员接口：分页列出自己的创作。
func (h *CreationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := pagination(c)
	creations, total, err := h.creationService.List(user.ID, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": creations, "total": total},
	})
}

// Delete 会员接口：删除自己的一条创作。
func (h *CreationHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的创作 ID"})
		return
	}
	if err := h.creationService.Delete(user.ID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
