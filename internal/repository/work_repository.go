package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// WorkRepository 接口定义了作品集条目的持久化操作。
type WorkRepository interface {
	Create(work *model.Work) error
	Update(work *model.Work) error
	Delete(id uint) error
	FindByID(id uint) (*model.Work, error)
	FindBySlug(slug string) (*model.Work, error)
	FindPublished(category string, offset, limit int) ([]model.Work, int64, error)
	FindHighlights(limit int) ([]model.Work, error)
	FindWithPagination(offset, limit int) ([]model.Work, int64, error)
}

type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository 创建一个新的 WorkRepository 实例。
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(work *model.Work) error {
	return r.db.Create(work).Error
}

func (r *workRepository) Update(work *model.Work) error {
	return r.db.Save(work).Error
}

func (r *workRepository) Delete(id uint) error {
	return r.db.Delete(&model.Work{}, id).Error
}

func (r *workRepository) FindByID(id uint) (*model.Work, error) {
	var work model.Work
	err := r.db.First(&work, id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// FindBySlug 根据 slug 查找一条已发布的作品。
func (r *workRepository) FindBySlug(slug string) (*model.Work, error) {
	var work model.Work
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// FindPublished 分页检索已发布的作品，category 为空时不过滤分类。
func (r *workRepository) FindPublished(category string, offset, limit int) ([]model.Work, int64, error) {
	var works []model.Work
	var total int64

	db := r.db.Model(&model.Work{}).Where("published = ?", true)
	if category != "" {
		db = db.Where("category = ?", category)
	}

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("published_at DESC").Offset(offset).Limit(limit).Find(&works).Error
	if err != nil {
		return nil, 0, err
	}

	return works, total, nil
}

// FindHighlights 检索首页精选作品。
func (r *workRepository) FindHighlights(limit int) ([]model.Work, error) {
	var works []model.Work
	err := r.db.Where("published = ? AND highlight = ?", true, true).
		Order("published_at DESC").Limit(limit).Find(&works).Error
	return works, err
}

// FindWithPagination 分页检索全部作品（含未发布），供后台管理使用。
func (r *workRepository) FindWithPagination(offset, limit int) ([]model.Work, int64, error) {
	var works []model.Work
	var total int64

	db := r.db.Model(&model.Work{})

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&works).Error
	if err != nil {
		return nil, 0, err
	}

	return works, total, nil
}
