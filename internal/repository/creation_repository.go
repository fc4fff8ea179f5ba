package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// CreationRepository 接口定义了会员已保存创作的持久化操作。
type CreationRepository interface {
	Create(creation *model.Creation) error
	Delete(userID, creationID uint) error
	FindByUserID(userID uint, offset, limit int) ([]model.Creation, int64, error)
}

type creationRepository struct {
	db *gorm.DB
}

// NewCreationRepository 创建一个新的 CreationRepository 实例。
func NewCreationRepository(db *gorm.DB) CreationRepository {
	return &creationRepository{db: db}
}

func (r *creationRepository) Create(creation *model.Creation) error {
	return r.db.Create(creation).Error
}

func (r *creationRepository) Delete(userID, creationID uint) error {
	return r.db.Where("id = ? AND user_id = ?", creationID, userID).Delete(&model.Creation{}).Error
}

func (r *creationRepository) FindByUserID(userID uint, offset, limit int) ([]model.Creation, int64, error) {
	var creations []model.Creation
	var total int64

	db := r.db.Model(&model.Creation{}).Where("user_id = ?", userID)

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&creations).Error
	if err != nil {
		return nil, 0, err
	}

	return creations, total, nil
}
