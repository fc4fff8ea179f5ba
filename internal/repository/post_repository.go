package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// PostRepository 接口定义了博客文章的持久化操作。
type PostRepository interface {
	Create(post *model.Post) error
	Update(post *model.Post) error
	Delete(id uint) error
	FindByID(id uint) (*model.Post, error)
	FindBySlug(slug string) (*model.Post, error)
	FindPublished(offset, limit int) ([]model.Post, int64, error)
	FindWithPagination(offset, limit int) ([]model.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建一个新的 PostRepository 实例。
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}

func (r *postRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug 根据 slug 查找一篇已发布的文章。
func (r *postRepository) FindBySlug(slug string) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPublished 分页检索已发布的文章，按发布时间倒序。
func (r *postRepository) FindPublished(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	db := r.db.Model(&model.Post{}).Where("published = ?", true)

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("published_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// FindWithPagination 分页检索全部文章（含未发布），供后台管理使用。
func (r *postRepository) FindWithPagination(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	db := r.db.Model(&model.Post{})

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
