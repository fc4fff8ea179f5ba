package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责后台的用户管理与站点设置接口。
type AdminHandler struct {
	adminService    service.AdminService
	settingsService service.SettingsService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService, settingsService service.SettingsService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		settingsService: settingsService,
	}
}

// ListUsers 管理接口：分页列出所有用户。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, size := pagination(c)
	resp, err := h.adminService.ListUsers(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": resp})
}

// SetRoleRequest 定义了调整用户角色的请求体结构。
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetUserRole 管理接口：调整用户角色。
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的用户 ID"})
		return
	}
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	user, err := h.adminService.SetUserRole(uint(id), req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": user})
}

// GetPaymentSetting 管理接口：查看支付配置（密钥不回显）。
func (h *AdminHandler) GetPaymentSetting(c *gin.Context) {
	setting, err := h.settingsService.GetPaymentSetting()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": setting})
}

// PaymentSettingRequest 定义了更新支付配置的请求体结构。
type PaymentSettingRequest struct {
	Provider       string `json:"provider"`
	PublishableKey string `json:"publishableKey"`
	SecretKey      string `json:"secretKey"`
	Currency       string `json:"currency"`
	Enabled        bool   `json:"enabled"`
}

// UpdatePaymentSetting 管理接口：更新支付配置。
func (h *AdminHandler) UpdatePaymentSetting(c *gin.Context) {
	var req PaymentSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	setting, err := h.settingsService.UpdatePaymentSetting(req.Provider, req.PublishableKey, req.SecretKey, req.Currency, req.Enabled)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": setting})
}
