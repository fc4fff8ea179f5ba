package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// TeamHandler 负责团队成员介绍的公开浏览与后台管理接口。
type TeamHandler struct {
	teamService service.TeamService
}

// NewTeamHandler 创建一个新的 TeamHandler 实例。
func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// List 公开接口：按展示顺序列出团队成员。
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.teamService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": members})
}

// TeamMemberRequest 定义了创建/更新团队成员的请求体结构。
type TeamMemberRequest struct {
	Name      string `json:"name" binding:"required"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	SortOrder int    `json:"sortOrder"`
}

// Create 管理接口：新增团队成员。
func (h *TeamHandler) Create(c *gin.Context) {
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	member := &model.TeamMember{
		Name:      req.Name,
		Title:     req.Title,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		SortOrder: req.SortOrder,
	}
	if err := h.teamService.Create(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": member})
}

// Update 管理接口：更新团队成员。
func (h *TeamHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的成员 ID"})
		return
	}
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	member, err := h.teamService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "成员不存在"})
		return
	}
	member.Name = req.Name
	member.Title = req.Title
	member.Bio = req.Bio
	member.AvatarURL = req.AvatarURL
	member.SortOrder = req.SortOrder
	if err := h.teamService.Update(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": member})
}

// Delete 管理接口：删除团队成员。
func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的成员 ID"})
		return
	}
	if err := h.teamService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}
