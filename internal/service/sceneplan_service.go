package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/internal/model"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/pkg/llm"
)

const defaultScenePlanSystemPrompt = "You are a production planner for a creative agency. " +
	"Given a shoot brief, reply with a JSON array of scenes. Each scene is an object with " +
	"\"name\", \"location\", \"props\" and \"notes\" fields. Reply with the JSON array only."

// ScenePlanService 接口定义了拍摄场景规划的业务操作。
type ScenePlanService interface {
	Create(userID uint, title, brief string) (*model.ScenePlan, error)
	Get(userID, planID uint) (*model.ScenePlan, error)
	List(userID uint) ([]model.ScenePlan, error)
	Update(userID, planID uint, title, brief, scenes, status string) (*model.ScenePlan, error)
	Delete(userID, planID uint) error
	GenerateScenes(ctx context.Context, userID, planID uint) (*model.ScenePlan, error)
}

type scenePlanService struct {
	planRepo  repository.ScenePlanRepository
	llmClient llm.Client
}

// NewScenePlanService 创建一个新的 ScenePlanService 实例。
func NewScenePlanService(planRepo repository.ScenePlanRepository, llmClient llm.Client) ScenePlanService {
	return &scenePlanService{
		planRepo:  planRepo,
		llmClient: llmClient,
	}
}

func (s *scenePlanService) Create(userID uint, title, brief string) (*model.ScenePlan, error) {
	if title == "" {
		return nil, errors.New("规划标题不能为空")
	}
	plan := &model.ScenePlan{
		UserID: userID,
		Title:  title,
		Brief:  brief,
		Status: "draft",
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *scenePlanService) Get(userID, planID uint) (*model.ScenePlan, error) {
	return s.planRepo.FindByID(userID, planID)
}

func (s *scenePlanService) List(userID uint) ([]model.ScenePlan, error) {
	return s.planRepo.FindByUserID(userID)
}

// Update 更新规划的可编辑字段，空串表示不修改对应字段。
func (s *scenePlanService) Update(userID, planID uint, title, brief, scenes, status string) (*model.ScenePlan, error) {
	plan, err := s.planRepo.FindByID(userID, planID)
	if err != nil {
		return nil, err
	}
	if title != "" {
		plan.Title = title
	}
	if brief != "" {
		plan.Brief = brief
	}
	if scenes != "" {
		plan.Scenes = scenes
	}
	if status != "" {
		if status != "draft" && status != "final" {
			return nil, errors.New("非法的规划状态")
		}
		plan.Status = status
	}
	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *scenePlanService) Delete(userID, planID uint) error {
	return s.planRepo.Delete(userID, planID)
}

// GenerateScenes 根据规划的 brief 调用一次非流式补全，生成场景列表并写回规划。
// 模型输出要求是 JSON 数组，偶发的 markdown 包裹会被剥掉后再校验。
func (s *scenePlanService) GenerateScenes(ctx context.Context, userID, planID uint) (*model.ScenePlan, error) {
	plan, err := s.planRepo.FindByID(userID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Brief == "" {
		return nil, errors.New("规划缺少 brief，无法生成场景")
	}

	systemPrompt := config.Conf.LLM.Prompt.ScenePlanSystem
	if systemPrompt == "" {
		systemPrompt = defaultScenePlanSystemPrompt
	}
	messages := []llm.Message{
		llm.TextMessage("system", systemPrompt),
		llm.TextMessage("user", plan.Brief),
	}

	raw, err := s.llmClient.Complete(ctx, messages, nil)
	if err != nil {
		return nil, err
	}

	scenes := stripCodeFence(raw)
	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(scenes), &parsed); err != nil {
		return nil, errors.New("场景生成结果不是合法的 JSON 数组")
	}

	plan.Scenes = scenes
	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// stripCodeFence 剥掉 ```json ... ``` 形式的 markdown 包裹。
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
