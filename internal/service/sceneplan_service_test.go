package service

import (
	"context"
	"testing"

	"lumen-studio-go/internal/model"
	"lumen-studio-go/pkg/llm"

	"gorm.io/gorm"
)

// fakeScenePlanRepo 是 ScenePlanRepository 的内存实现。
type fakeScenePlanRepo struct {
	plans  map[uint]*model.ScenePlan
	nextID uint
}

func newFakeScenePlanRepo() *fakeScenePlanRepo {
	return &fakeScenePlanRepo{plans: make(map[uint]*model.ScenePlan), nextID: 1}
}

func (f *fakeScenePlanRepo) Create(plan *model.ScenePlan) error {
	plan.ID = f.nextID
	f.nextID++
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakeScenePlanRepo) Update(plan *model.ScenePlan) error {
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakeScenePlanRepo) Delete(userID, planID uint) error {
	delete(f.plans, planID)
	return nil
}

func (f *fakeScenePlanRepo) FindByID(userID, planID uint) (*model.ScenePlan, error) {
	p, ok := f.plans[planID]
	if !ok || p.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeScenePlanRepo) FindByUserID(userID uint) ([]model.ScenePlan, error) {
	var out []model.ScenePlan
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// completionStub 只实现非流式补全。
type completionStub struct {
	reply string
	err   error
}

func (s *completionStub) StreamChatMessages(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams, writer llm.MessageWriter) error {
	return nil
}

func (s *completionStub) Complete(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	return s.reply, s.err
}

func TestGenerateScenesWritesBackPlan(t *testing.T) {
	repo := newFakeScenePlanRepo()
	stub := &completionStub{reply: "```json\n[{\"name\":\"开场\",\"location\":\"天台\",\"props\":\"霓虹灯牌\",\"notes\":\"黄昏拍摄\"}]\n```"}
	svc := NewScenePlanService(repo, stub)

	plan, err := svc.Create(5, "秋季 campaign", "城市夜景主题的产品短片")
	if err != nil {
		t.Fatalf("创建规划失败: %v", err)
	}

	generated, err := svc.GenerateScenes(context.Background(), 5, plan.ID)
	if err != nil {
		t.Fatalf("生成场景失败: %v", err)
	}
	if generated.Scenes == "" || generated.Scenes[0] != '[' {
		t.Errorf("应写回剥掉围栏后的 JSON 数组: %q", generated.Scenes)
	}

	stored, _ := repo.FindByID(5, plan.ID)
	if stored.Scenes != generated.Scenes {
		t.Error("生成结果未持久化")
	}
}

func TestGenerateScenesRejectsNonJSON(t *testing.T) {
	repo := newFakeScenePlanRepo()
	stub := &completionStub{reply: "I think scene one should be on a rooftop."}
	svc := NewScenePlanService(repo, stub)

	plan, _ := svc.Create(5, "试拍", "极简风格")
	if _, err := svc.GenerateScenes(context.Background(), 5, plan.ID); err == nil {
		t.Error("非 JSON 输出应报错")
	}

	stored, _ := repo.FindByID(5, plan.ID)
	if stored.Scenes != "" {
		t.Errorf("失败时不应写回场景: %q", stored.Scenes)
	}
}

func TestGenerateScenesRequiresBrief(t *testing.T) {
	repo := newFakeScenePlanRepo()
	svc := NewScenePlanService(repo, &completionStub{})

	plan, _ := svc.Create(5, "空规划", "")
	if _, err := svc.GenerateScenes(context.Background(), 5, plan.ID); err == nil {
		t.Error("缺少 brief 应报错")
	}
}

func TestScenePlanOwnership(t *testing.T) {
	repo := newFakeScenePlanRepo()
	svc := NewScenePlanService(repo, &completionStub{})

	plan, _ := svc.Create(5, "私有规划", "brief")
	if _, err := svc.Get(6, plan.ID); err == nil {
		t.Error("他人规划应不可见")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"[1,2]", "[1,2]"},
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  [1,2]  ", "[1,2]"},
	}
	for _, c := range cases {
		if got := stripCodeFence(c.in); got != c.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
