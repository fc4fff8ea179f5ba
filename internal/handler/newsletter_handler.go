package handler

import (
	"net/http"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsletterHandler 负责邮件订阅的公开接口与后台推送管理。
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler 创建一个新的 NewsletterHandler 实例。
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// EmailRequest 定义了订阅/退订的请求体结构。
type EmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// Subscribe 公开接口：订阅邮件通讯。
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	if err := h.newsletterService.Subscribe(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// Unsubscribe 公开接口：退订邮件通讯。
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	if err := h.newsletterService.Unsubscribe(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// ListSubscribers 管理接口：分页列出订阅者。
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	page, size := pagination(c)
	subs, total, err := h.newsletterService.ListSubscribers(page, size)
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

// CampaignRequest 定义了发起邮件推送的请求体结构。
type CampaignRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body"`
}

// SendCampaign 管理接口：发起一次邮件推送。
func (h *NewsletterHandler) SendCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	campaign, err := h.newsletterService.SendCampaign(req.Subject, req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": campaign})
}

// ListCampaigns 管理接口：分页列出历史推送。
func (h *NewsletterHandler) ListCampaigns(c *gin.Context) {
	page, size := pagination(c)
	campaigns, total, err := h.newsletterService.ListCampaigns(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": campaigns, "total": total},
	})
}
