package handler

import (
	"net/http"

	"lumen-studio-go/internal/service"
	"lumen-studio-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// MediaHandler 负责媒体文件上传与访问链接接口。
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler 创建一个新的 MediaHandler 实例。
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload 会员接口：上传一个图片文件（multipart form，字段名 file）。
func (h *MediaHandler) Upload(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "缺少上传文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取上传文件"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	objectName, err := h.mediaService.Upload(c.Request.Context(), user.ID, fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		log.Warnf("媒体上传失败: user=%d, file=%s, error: %v", user.ID, fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.mediaService.PresignedURL(objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"objectName": objectName, "url": url},
	})
}

// GetURL 会员接口：为已有对象重新生成访问链接。
func (h *MediaHandler) GetURL(c *gin.Context) {
	objectName := c.Query("objectName")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "缺少 objectName 参数"})
		return
	}
	url, err := h.mediaService.PresignedURL(objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"url": url}})
}
