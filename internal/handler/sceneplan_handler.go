package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ScenePlanHandler 负责会员拍摄场景规划接口。
type ScenePlanHandler struct {
	scenePlanService service.ScenePlanService
}

// NewScenePlanHandler 创建一个新的 ScenePlanHandler 实例。
func NewScenePlanHandler(scenePlanService service.ScenePlanService) *ScenePlanHandler {
	return &ScenePlanHandler{scenePlanService: scenePlanService}
}

// ScenePlanRequest 定义了创建规划的请求体结构。
type ScenePlanRequest struct {
	Title string `json:"title" binding:"required"`
	Brief string `json:"brief"`
}

// Create 会员接口：创建一个场景规划。
func (h *ScenePlanHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req ScenePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	plan, err := h.scenePlanService.Create(user.ID, req.Title, req.Brief)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}

// List 会员接口：列出自己的全部规划。
func (h *ScenePlanHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plans, err := h.scenePlanService.List(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plans})
}

// Get 会员接口：查看单个规划。
func (h *ScenePlanHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的规划 ID"})
		return
	}
	plan, err := h.scenePlanService.Get(user.ID, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "规划不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}

// UpdateScenePlanRequest 定义了更新规划的请求体结构，空字段表示不修改。
type UpdateScenePlanRequest struct {
	Title  string `json:"title"`
	Brief  string `json:"brief"`
	Scenes string `json:"scenes"`
	Status string `json:"status"`
}

// Update 会员接口：更新规划的标题、brief、场景或状态。
func (h *ScenePlanHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的规划 ID"})
		return
	}
	var req UpdateScenePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	plan, err := h.scenePlanService.Update(user.ID, uint(id), req.Title, req.Brief, req.Scenes, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}

// Delete 会员接口：删除自己的规划。
func (h *ScenePlanHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的规划 ID"})
		return
	}
	if err := h.scenePlanService.Delete(user.ID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// GenerateScenes 会员接口：根据 brief 生成场景列表并写回规划。
func (h *ScenePlanHandler) GenerateScenes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的规划 ID"})
		return
	}
	plan, err := h.scenePlanService.GenerateScenes(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": plan})
}
