package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler 负责委托订单的会员与后台管理接口。
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler 创建一个新的 OrderHandler 实例。
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest 定义了创建订单的请求体结构。
type CreateOrderRequest struct {
	Title       string `json:"title" binding:"required"`
	Brief       string `json:"brief"`
	AmountCents int64  `json:"amountCents"`
}

// Create 会员接口：提交一个委托订单。
func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	order, err := h.orderService.Create(user.ID, req.Title, req.Brief, req.AmountCents)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": order})
}

// ListMine 会员接口：分页列出自己的订单。
func (h *OrderHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := pagination(c)
	orders, total, err := h.orderService.ListByUser(user.ID, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": orders, "total": total},
	})
}

// GetMine 会员接口：查看自己的单个订单。
func (h *OrderHandler) GetMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的订单 ID"})
		return
	}
	order, err := h.orderService.GetForUser(user.ID, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "订单不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": order})
}

// ListAll 管理接口：分页列出全部订单，支持按状态过滤。
func (h *OrderHandler) ListAll(c *gin.Context) {
	page, size := pagination(c)
	orders, total, err := h.orderService.ListAll(c.Query("status"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": orders, "total": total},
	})
}

// UpdateStatusRequest 定义了推进订单状态的请求体结构。
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 管理接口：推进订单状态并通知会员。
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的订单 ID"})
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	order, err := h.orderService.UpdateStatus(uint(id), req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": order})
}
