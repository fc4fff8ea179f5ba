package service

import (
	"errors"
	"strings"
	"time"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"

	"gorm.io/gorm"
)

// NewsletterService 接口定义了邮件订阅与推送的业务操作。
type NewsletterService interface {
	Subscribe(email string) error
	Unsubscribe(email string) error
	ListSubscribers(page, size int) ([]model.NewsletterSubscriber, int64, error)
	SendCampaign(subject, body string) (*model.Campaign, error)
	ListCampaigns(page, size int) ([]model.Campaign, int64, error)
}

type newsletterService struct {
	newsletterRepo repository.NewsletterRepository
}

// NewNewsletterService 创建一个新的 NewsletterService 实例。
func NewNewsletterService(newsletterRepo repository.NewsletterRepository) NewsletterService {
	return &newsletterService{newsletterRepo: newsletterRepo}
}

// Subscribe 登记一个订阅邮箱。重复订阅是幂等操作。
func (s *newsletterService) Subscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("邮箱格式不正确")
	}
	_, err := s.newsletterRepo.FindSubscriberByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.newsletterRepo.CreateSubscriber(&model.NewsletterSubscriber{
		Email:     email,
		Confirmed: true,
	})
}

// Unsubscribe 移除一个订阅邮箱，邮箱不存在时同样视为成功。
func (s *newsletterService) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("邮箱不能为空")
	}
	return s.newsletterRepo.DeleteSubscriberByEmail(email)
}

func (s *newsletterService) ListSubscribers(page, size int) ([]model.NewsletterSubscriber, int64, error) {
	return s.newsletterRepo.FindSubscribers((page-1)*size, size)
}

// SendCampaign 记录一次邮件推送。投递本身交给外部邮件服务，
// 这里固化主题、正文与当时的收件人数。
func (s *newsletterService) SendCampaign(subject, body string) (*model.Campaign, error) {
	if subject == "" {
		return nil, errors.New("推送主题不能为空")
	}
	count, err := s.newsletterRepo.CountConfirmedSubscribers()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	campaign := &model.Campaign{
		Subject:        subject,
		Body:           body,
		RecipientCount: int(count),
		SentAt:         &now,
	}
	if err := s.newsletterRepo.CreateCampaign(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *newsletterService) ListCampaigns(page, size int) ([]model.Campaign, int64, error) {
	return s.newsletterRepo.FindCampaigns((page-1)*size, size)
}
