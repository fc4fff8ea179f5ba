package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler 负责会员订阅计划接口。
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

// NewSubscriptionHandler 创建一个新的 SubscriptionHandler 实例。
func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// SubscribeRequest 定义了开通订阅的请求体结构。
type SubscribeRequest struct {
	PlanName   string `json:"planName" binding:"required"`
	PriceCents int64  `json:"priceCents"`
}

// Subscribe 会员接口：开通一个订阅计划。
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	sub, err := h.subscriptionService.Subscribe(user.ID, req.PlanName, req.PriceCents)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sub})
}

// GetCurrent 会员接口：查看当前生效中的订阅。
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	sub, err := h.subscriptionService.GetCurrent(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "当前没有生效中的订阅"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sub})
}

// ListMine 会员接口：列出自己的全部订阅记录。
func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	subs, err := h.subscriptionService.ListByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": subs})
}

// Cancel 会员接口：取消自己的订阅。
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的订阅 ID"})
		return
	}
	sub, err := h.subscriptionService.Cancel(user.ID, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sub})
}

// ListAll 管理接口：分页列出全部订阅，支持按状态过滤。
func (h *SubscriptionHandler) ListAll(c *gin.Context) {
	page, size := pagination(c)
	subs, total, err := h.subscriptionService.ListAll(c.Query("status"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": subs, "total": total},
	})
}

// SetStatusRequest 定义了调整订阅状态的请求体结构。
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus 管理接口：调整任意订阅的状态。
func (h *SubscriptionHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的订阅 ID"})
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	sub, err := h.subscriptionService.SetStatus(uint(id), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": sub})
}
