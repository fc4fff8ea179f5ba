package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/pkg/storage"
)

// 上传大小上限 10MB
const maxMediaSize = 10 << 20

// MediaService 接口定义了媒体文件（头像、封面、保存的 mockup）的上传操作。
type MediaService interface {
	Upload(ctx context.Context, userID uint, fileName, contentType string, size int64, reader io.Reader) (string, error)
	PresignedURL(objectName string) (string, error)
}

type mediaService struct{}

// NewMediaService 创建一个新的 MediaService 实例。
func NewMediaService() MediaService {
	return &mediaService{}
}

// Upload 校验并上传一个媒体文件，返回对象名。
func (s *mediaService) Upload(ctx context.Context, userID uint, fileName, contentType string, size int64, reader io.Reader) (string, error) {
	if size <= 0 || size > maxMediaSize {
		return "", errors.New("文件大小超出限制")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("只支持图片类型")
	}

	ext := path.Ext(fileName)
	objectName := fmt.Sprintf("media/%d/%d%s", userID, time.Now().UnixNano(), ext)

	err := storage.UploadObject(ctx, config.Conf.MinIO.BucketName, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// PresignedURL 为对象生成一个 24 小时有效的访问链接。
func (s *mediaService) PresignedURL(objectName string) (string, error) {
	return storage.GetPresignedURL(config.Conf.MinIO.BucketName, objectName, 24*time.Hour)
}
