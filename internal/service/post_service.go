package service

import (
	"time"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/kafka"
	"lumen-studio-go/pkg/log"
	"lumen-studio-go/pkg/tasks"
)

// PostService 接口定义了博客文章的业务操作。
type PostService interface {
	ListPublished(page, size int) ([]model.Post, int64, error)
	GetBySlug(slug string) (*model.Post, error)
	Get(id uint) (*model.Post, error)
	ListAll(page, size int) ([]model.Post, int64, error)
	Create(post *model.Post) error
	Update(post *model.Post) error
	Delete(id uint) error
	SetPublished(id uint, published bool) (*model.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService 创建一个新的 PostService 实例。
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) ListPublished(page, size int) ([]model.Post, int64, error) {
	return s.postRepo.FindPublished((page-1)*size, size)
}

func (s *postService) GetBySlug(slug string) (*model.Post, error) {
	return s.postRepo.FindBySlug(slug)
}

func (s *postService) Get(id uint) (*model.Post, error) {
	return s.postRepo.FindByID(id)
}

func (s *postService) ListAll(page, size int) ([]model.Post, int64, error) {
	return s.postRepo.FindWithPagination((page-1)*size, size)
}

func (s *postService) Create(post *model.Post) error {
	if err := s.postRepo.Create(post); err != nil {
		return err
	}
	if post.Published {
		now := time.Now()
		post.PublishedAt = &now
		if err := s.postRepo.Update(post); err != nil {
			return err
		}
		s.enqueueIndex(post.ID, false)
	}
	return nil
}

func (s *postService) Update(post *model.Post) error {
	if err := s.postRepo.Update(post); err != nil {
		return err
	}
	if post.Published {
		s.enqueueIndex(post.ID, false)
	}
	return nil
}

func (s *postService) Delete(id uint) error {
	if err := s.postRepo.Delete(id); err != nil {
		return err
	}
	s.enqueueIndex(id, true)
	return nil
}

// SetPublished 切换发布状态，与作品的发布流程一致。
func (s *postService) SetPublished(id uint, published bool) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	post.Published = published
	if published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	s.enqueueIndex(post.ID, !published)
	return post, nil
}

func (s *postService) enqueueIndex(id uint, remove bool) {
	task := tasks.ContentIndexTask{
		ContentType: tasks.ContentTypePost,
		ContentID:   id,
		Remove:      remove,
	}
	if err := kafka.ProduceIndexTask(task); err != nil {
		log.Errorf("投递文章索引任务失败: id=%d, error: %v", id, err)
	}
}
