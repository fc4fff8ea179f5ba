package handler

import (
	"net/http"
	"strconv"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkHandler 负责作品集的公开浏览与后台管理接口。
type WorkHandler struct {
	workService service.WorkService
}

// NewWorkHandler 创建一个新的 WorkHandler 实例。
func NewWorkHandler(workService service.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// pagination 解析 page/size 查询参数，给出安全的默认值。
func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}

// ListPublished 公开接口：分页列出已发布的作品，支持按分类过滤。
func (h *WorkHandler) ListPublished(c *gin.Context) {
	page, size := pagination(c)
	works, total, err := h.workService.ListPublished(c.Query("category"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": works, "total": total},
	})
}

// ListHighlights 公开接口：首页精选作品。
func (h *WorkHandler) ListHighlights(c *gin.Context) {
	works, err := h.workService.ListHighlights(6)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": works})
}

// GetBySlug 公开接口：按 slug 获取单个已发布作品。
func (h *WorkHandler) GetBySlug(c *gin.Context) {
	work, err := h.workService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "作品不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": work})
}

// ListAll 管理接口：分页列出全部作品（含未发布）。
func (h *WorkHandler) ListAll(c *gin.Context) {
	page, size := pagination(c)
	works, total, err := h.workService.ListAll(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": works, "total": total},
	})
}

// WorkRequest 定义了创建/更新作品的请求体结构。
type WorkRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Category  string `json:"category"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	CoverURL  string `json:"coverUrl"`
	Highlight bool   `json:"highlight"`
	Published bool   `json:"published"`
}

// Create 管理接口：创建作品。
func (h *WorkHandler) Create(c *gin.Context) {
	var req WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	work := &model.Work{
		Title:     req.Title,
		Slug:      req.Slug,
		Category:  req.Category,
		Summary:   req.Summary,
		Body:      req.Body,
		CoverURL:  req.CoverURL,
		Highlight: req.Highlight,
		Published: req.Published,
	}
	if err := h.workService.Create(work); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": work})
}

// Update 管理接口：更新作品。
func (h *WorkHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的作品 ID"})
		return
	}
	var req WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	work, err := h.workService.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "作品不存在"})
		return
	}
	work.Title = req.Title
	work.Slug = req.Slug
	work.Category = req.Category
	work.Summary = req.Summary
	work.Body = req.Body
	work.CoverURL = req.CoverURL
	work.Highlight = req.Highlight
	if err := h.workService.Update(work); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": work})
}

// Delete 管理接口：删除作品并移出检索索引。
func (h *WorkHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的作品 ID"})
		return
	}
	if err := h.workService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success"})
}

// PublishRequest 定义了切换发布状态的请求体结构。
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// SetPublished 管理接口：发布或下架作品。
func (h *WorkHandler) SetPublished(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的作品 ID"})
		return
	}
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的请求负载"})
		return
	}
	work, err := h.workService.SetPublished(uint(id), *req.Published)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": work})
}
