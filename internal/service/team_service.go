package service

import (
	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
)

// TeamService 接口定义了团队成员介绍的业务操作。
type TeamService interface {
	List() ([]model.TeamMember, error)
	Create(member *model.TeamMember) error
	Update(member *model.TeamMember) error
	Delete(id uint) error
	Get(id uint) (*model.TeamMember, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService 创建一个新的 TeamService 实例。
func NewTeamService(teamRepo repository.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

func (s *teamService) List() ([]model.TeamMember, error) {
	return s.teamRepo.FindAll()
}

func (s *teamService) Create(member *model.TeamMember) error {
	return s.teamRepo.Create(member)
}

func (s *teamService) Update(member *model.TeamMember) error {
	return s.teamRepo.Update(member)
}

func (s *teamService) Delete(id uint) error {
	return s.teamRepo.Delete(id)
}

func (s *teamService) Get(id uint) (*model.TeamMember, error) {
	return s.teamRepo.FindByID(id)
}
