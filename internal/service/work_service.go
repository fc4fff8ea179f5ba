package service

import (
	"time"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/kafka"
	"lumen-studio-go/pkg/log"
	"lumen-studio-go/pkg/tasks"
)

// WorkService 接口定义了作品集的业务操作。
type WorkService interface {
	ListPublished(category string, page, size int) ([]model.Work, int64, error)
	ListHighlights(limit int) ([]model.Work, error)
	GetBySlug(slug string) (*model.Work, error)
	Get(id uint) (*model.Work, error)
	ListAll(page, size int) ([]model.Work, int64, error)
	Create(work *model.Work) error
	Update(work *model.Work) error
	Delete(id uint) error
	SetPublished(id uint, published bool) (*model.Work, error)
}

type workService struct {
	workRepo repository.WorkRepository
}

// NewWorkService 创建一个新的 WorkService 实例。
func NewWorkService(workRepo repository.WorkRepository) WorkService {
	return &workService{workRepo: workRepo}
}

func (s *workService) ListPublished(category string, page, size int) ([]model.Work, int64, error) {
	return s.workRepo.FindPublished(category, (page-1)*size, size)
}

func (s *workService) ListHighlights(limit int) ([]model.Work, error) {
	return s.workRepo.FindHighlights(limit)
}

func (s *workService) GetBySlug(slug string) (*model.Work, error) {
	return s.workRepo.FindBySlug(slug)
}

func (s *workService) Get(id uint) (*model.Work, error) {
	return s.workRepo.FindByID(id)
}

func (s *workService) ListAll(page, size int) ([]model.Work, int64, error) {
	return s.workRepo.FindWithPagination((page-1)*size, size)
}

func (s *workService) Create(work *model.Work) error {
	if err := s.workRepo.Create(work); err != nil {
		return err
	}
	if work.Published {
		now := time.Now()
		work.PublishedAt = &now
		if err := s.workRepo.Update(work); err != nil {
			return err
		}
		s.enqueueIndex(work.ID, false)
	}
	return nil
}

// Update 保存作品修改；已发布的作品同步刷新检索索引。
func (s *workService) Update(work *model.Work) error {
	if err := s.workRepo.Update(work); err != nil {
		return err
	}
	if work.Published {
		s.enqueueIndex(work.ID, false)
	}
	return nil
}

// Delete 删除作品并从检索索引中移除。
func (s *workService) Delete(id uint) error {
	if err := s.workRepo.Delete(id); err != nil {
		return err
	}
	s.enqueueIndex(id, true)
	return nil
}

// SetPublished 切换发布状态。首次发布时写入发布时间；
// 取消发布时从检索索引中移除。
func (s *workService) SetPublished(id uint, published bool) (*model.Work, error) {
	work, err := s.workRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	work.Published = published
	if published && work.PublishedAt == nil {
		now := time.Now()
		work.PublishedAt = &now
	}
	if err := s.workRepo.Update(work); err != nil {
		return nil, err
	}
	s.enqueueIndex(work.ID, !published)
	return work, nil
}

// enqueueIndex 投递索引任务到 Kafka，失败只记录日志不阻断主流程。
func (s *workService) enqueueIndex(id uint, remove bool) {
	task := tasks.ContentIndexTask{
		ContentType: tasks.ContentTypeWork,
		ContentID:   id,
		Remove:      remove,
	}
	if err := kafka.ProduceIndexTask(task); err != nil {
		log.Errorf("投递作品索引任务失败: id=%d, error: %v", id, err)
	}
}
