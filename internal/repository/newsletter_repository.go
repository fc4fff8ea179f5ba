package repository

import (
	"lumen-studio-go/internal/model"

	"gorm.io/gorm"
)

// NewsletterRepository 接口定义了邮件订阅与推送记录的持久化操作。
type NewsletterRepository interface {
	CreateSubscriber(sub *model.NewsletterSubscriber) error
	DeleteSubscriberByEmail(email string) error
	FindSubscriberByEmail(email string) (*model.NewsletterSubscriber, error)
	FindSubscribers(offset, limit int) ([]model.NewsletterSubscriber, int64, error)
	CountConfirmedSubscribers() (int64, error)
	CreateCampaign(campaign *model.Campaign) error
	FindCampaigns(offset, limit int) ([]model.Campaign, int64, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建一个新的 NewsletterRepository 实例。
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) CreateSubscriber(sub *model.NewsletterSubscriber) error {
	return r.db.Create(sub).Error
}

func (r *newsletterRepository) DeleteSubscriberByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&model.NewsletterSubscriber{}).Error
}

func (r *newsletterRepository) FindSubscriberByEmail(email string) (*model.NewsletterSubscriber, error) {
	var sub model.NewsletterSubscriber
	err := r.db.Where("email = ?", email).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *newsletterRepository) FindSubscribers(offset, limit int) ([]model.NewsletterSubscriber, int64, error) {
	var subs []model.NewsletterSubscriber
	var total int64

	db := r.db.Model(&model.NewsletterSubscriber{})

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *newsletterRepository) CountConfirmedSubscribers() (int64, error) {
	var total int64
	err := r.db.Model(&model.NewsletterSubscriber{}).Where("confirmed = ?", true).Count(&total).Error
	return total, err
}

func (r *newsletterRepository) CreateCampaign(campaign *model.Campaign) error {
	return r.db.Create(campaign).Error
}

func (r *newsletterRepository) FindCampaigns(offset, limit int) ([]model.Campaign, int64, error) {
	var campaigns []model.Campaign
	var total int64

	db := r.db.Model(&model.Campaign{})

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("id DESC").Offset(offset).Limit(limit).Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}
