package service

import (
	"errors"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
)

// CreationService 接口定义了会员已保存创作的业务操作。
type CreationService interface {
	Save(userID uint, prompt, content, imageURL string) (*model.Creation, error)
	List(userID uint, page, size int) ([]model.Creation, int64, error)
	Delete(userID, creationID uint) error
}

type creationService struct {
	creationRepo repository.CreationRepository
}

// NewCreationService 创建一个新的 CreationService 实例。
func NewCreationService(creationRepo repository.CreationRepository) CreationService {
	return &creationService{creationRepo: creationRepo}
}

// Save 把 Creator 的一轮产出固化为一条创作记录。
func (s *creationService) Save(userID uint, prompt, content, imageURL string) (*model.Creation, error) {
	if content == "" {
		return nil, errors.New("创作内容不能为空")
	}
	creation := &model.Creation{
		UserID:   userID,
		Prompt:   prompt,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.creationRepo.Create(creation); err != nil {
		return nil, err
	}
	return creation, nil
}

func (s *creationService) List(userID uint, page, size int) ([]model.Creation, int64, error) {
	return s.creationRepo.FindByUserID(userID, (page-1)*size, size)
}

func (s *creationService) Delete(userID, creationID uint) error {
	return s.creationRepo.Delete(userID, creationID)
}
