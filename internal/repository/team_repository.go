package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// TeamRepository 接口定义了团队成员的持久化操作。
type TeamRepository interface {
	Create(member *model.TeamMember) error
	Update(member *model.TeamMember) error
	Delete(id uint) error
	FindByID(id uint) (*model.TeamMember, error)
	FindAll() ([]model.TeamMember, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository 创建一个新的 TeamRepository 实例。
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(member *model.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamRepository) Update(member *model.TeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamRepository) Delete(id uint) error {
	return r.db.Delete(&model.TeamMember{}, id).Error
}

func (r *teamRepository) FindByID(id uint) (*model.TeamMember, error) {
	var member model.TeamMember
	err := r.db.First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindAll 按展示顺序检索全部团队成员。
func (r *teamRepository) FindAll() ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.Order("sort_order ASC, id ASC").Find(&members).Error
	return members, err
}
