package story

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"bedtime-story-api/internal/domain/entity"
	"bedtime-story-api/internal/domain/repository"
	apperrors "bedtime-story-api/pkg/errors"
)

// memoryStoryRepo 内存版收藏仓储
type memoryStoryRepo struct {
	mu      sync.Mutex
	stories map[string]*entity.Story
}

func newMemoryStoryRepo() *memoryStoryRepo {
	return &memoryStoryRepo{stories: make(map[string]*entity.Story)}
}

func (r *memoryStoryRepo) Create(ctx context.Context, story *entity.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *story
	r.stories[story.ID] = &cp
	return nil
}

func (r *memoryStoryRepo) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryStoryRepo) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Story], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*entity.Story, 0)
	for _, s := range r.stories {
		if s.UserID == userID {
			cp := *s
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return repository.NewPagedResult(items, int64(len(items)), pagination), nil
}

func (r *memoryStoryRepo) UpdateRating(ctx context.Context, id string, rating int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stories[id]; ok {
		s.Rating = rating
		return nil
	}
	return errors.New("not found")
}

func (r *memoryStoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stories, id)
	return nil
}

func newTestService(genBackend, transBackend *fakeChatModel, repo repository.StoryRepository) *Service {
	factory := &fakeFactory{models: map[string]*fakeChatModel{
		"groq":   genBackend,
		"gemini": transBackend,
	}}
	return NewService(
		NewPromptBuilder(),
		NewGenerator(factory, DefaultGenerationConfig("groq", "gen-model")),
		NewTranslator(factory, TranslationConfig{
			Provider:   "gemini",
			Model:      "trans-model",
			Configured: true,
		}),
		NewCatalog(),
		repo,
		nil,
	)
}

func TestGeneratePipelineFrench(t *testing.T) {
	translated := "Le Dragon Endormi\n\nIl était une fois un petit dragon."
	gen := &fakeChatModel{response: sampleStory}
	trans := &fakeChatModel{response: translated}
	svc := newTestService(gen, trans, newMemoryStoryRepo())

	out, err := svc.Generate(context.Background(), &GenerateInput{
		Mode:            entity.StoryModeOriginal,
		DurationMinutes: 5,
		Language:        "French",
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// 提示词携带目标字数
	if len(gen.lastMsgs) != 2 || !strings.Contains(gen.lastMsgs[1].Content, "approximately 900 words") {
		t.Errorf("generation prompt missing word target: %+v", gen.lastMsgs)
	}

	// 生成一次、翻译一次，严格顺序
	if gen.callCount() != 1 {
		t.Errorf("generation backend called %d times, want 1", gen.callCount())
	}
	if trans.callCount() != 1 {
		t.Errorf("translation backend called %d times, want 1", trans.callCount())
	}

	if out.Title != "Le Dragon Endormi" {
		t.Errorf("title = %q", out.Title)
	}
	if out.Body != "Il était une fois un petit dragon." {
		t.Errorf("body = %q", out.Body)
	}
	if out.Language != "French" {
		t.Errorf("language = %q", out.Language)
	}
}

func TestGenerateEnglishSkipsTranslation(t *testing.T) {
	gen := &fakeChatModel{response: sampleStory}
	trans := &fakeChatModel{response: "should not be used"}
	svc := newTestService(gen, trans, newMemoryStoryRepo())

	out, err := svc.Generate(context.Background(), &GenerateInput{
		Mode:            entity.StoryModeOriginal,
		DurationMinutes: 5,
		Language:        "English",
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if trans.callCount() != 0 {
		t.Errorf("translation backend called %d times for English, want 0", trans.callCount())
	}
	if out.Title != "The Sleepy Dragon" {
		t.Errorf("title = %q", out.Title)
	}
}

func TestGenerateSurpriseResolvesConcreteTale(t *testing.T) {
	gen := &fakeChatModel{response: sampleStory}
	trans := &fakeChatModel{}
	svc := newTestService(gen, trans, newMemoryStoryRepo())

	out, err := svc.Generate(context.Background(), &GenerateInput{
		Mode:            entity.StoryModeClassic,
		DurationMinutes: 3,
		Language:        "English",
		TaleID:          entity.SurpriseTaleID,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if out.TaleID == "" || out.TaleID == entity.SurpriseTaleID {
		t.Errorf("surprise must resolve to a concrete tale, got %q", out.TaleID)
	}
	if !strings.Contains(gen.lastMsgs[1].Content, out.TaleTitle) {
		t.Errorf("prompt must name the resolved tale %q: %q", out.TaleTitle, gen.lastMsgs[1].Content)
	}
}

func TestGenerateValidation(t *testing.T) {
	svc := newTestService(&fakeChatModel{}, &fakeChatModel{}, newMemoryStoryRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		in   *GenerateInput
	}{
		{"unknown mode", &GenerateInput{Mode: "epic", DurationMinutes: 5, Language: "English"}},
		{"zero duration", &GenerateInput{Mode: entity.StoryModeOriginal, DurationMinutes: 0, Language: "English"}},
		{"missing modification", &GenerateInput{Mode: entity.StoryModeClassicMixed, DurationMinutes: 5, Language: "English"}},
		{"unsupported language", &GenerateInput{Mode: entity.StoryModeOriginal, DurationMinutes: 5, Language: "Klingon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, tt.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeInvalidParam {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidParam)
			}
		})
	}

	t.Run("unknown tale id", func(t *testing.T) {
		_, err := svc.Generate(ctx, &GenerateInput{
			Mode:            entity.StoryModeClassic,
			DurationMinutes: 5,
			Language:        "English",
			TaleID:          "no_such_tale",
		})
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeTaleNotFound {
			t.Errorf("expected tale not found, got %v", err)
		}
	})
}

func TestGenerateBackendFailureSurfaced(t *testing.T) {
	gen := &fakeChatModel{err: errors.New("backend down")}
	svc := newTestService(gen, &fakeChatModel{}, newMemoryStoryRepo())

	_, err := svc.Generate(context.Background(), &GenerateInput{
		Mode:            entity.StoryModeOriginal,
		DurationMinutes: 5,
		Language:        "English",
	})
	if err == nil {
		t.Fatal("expected generation failure")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeGenerationFailed {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeGenerationFailed)
	}
	if !strings.Contains(appErr.Detail, "backend down") {
		t.Errorf("detail %q must carry the cause", appErr.Detail)
	}
}

func TestSaveAndUpdateRating(t *testing.T) {
	repo := newMemoryStoryRepo()
	svc := newTestService(&fakeChatModel{}, &fakeChatModel{}, repo)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "user-1", &SaveInput{
		Title:    "The Sleepy Dragon",
		Body:     "Once upon a time.",
		Language: "English",
		Mode:     entity.StoryModeOriginal,
		Rating:   4,
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 评分越界
	if _, err := svc.Save(ctx, "user-1", &SaveInput{Body: "x", Rating: 6}); err == nil {
		t.Error("rating 6 must be rejected")
	}
	if _, err := svc.Save(ctx, "user-1", &SaveInput{Body: "x", Rating: 0}); err == nil {
		t.Error("rating 0 must be rejected")
	}

	// 本人更新评分
	if err := svc.UpdateRating(ctx, "user-1", saved.ID, 5); err != nil {
		t.Fatalf("UpdateRating() error: %v", err)
	}
	got, _ := repo.GetByID(ctx, saved.ID)
	if got.Rating != 5 {
		t.Errorf("rating = %d, want 5", got.Rating)
	}

	// 他人更新返回 not found
	err = svc.UpdateRating(ctx, "user-2", saved.ID, 1)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeStoryNotFound {
		t.Errorf("foreign story must surface not found, got %v", err)
	}

	// 不存在的故事
	err = svc.UpdateRating(ctx, "user-1", "missing", 3)
	appErr = apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeStoryNotFound {
		t.Errorf("missing story must surface not found, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := newMemoryStoryRepo()
	svc := newTestService(&fakeChatModel{}, &fakeChatModel{}, repo)
	ctx := context.Background()
	now := time.Now()

	older := entity.NewStory("user-1", "Older", "first story", "English", entity.StoryModeOriginal, 3)
	older.CreatedAt = now.Add(-time.Hour)
	newer := entity.NewStory("user-1", "Newer", "second story", "English", entity.StoryModeOriginal, 4)
	newer.CreatedAt = now
	foreign := entity.NewStory("user-2", "Foreign", "not mine", "English", entity.StoryModeOriginal, 5)
	for _, s := range []*entity.Story{older, newer, foreign} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	result, err := svc.List(ctx, "user-1", repository.NewPagination(1, 20))
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d stories, want 2", len(result.Items))
	}
	if result.Items[0].ID != newer.ID || result.Items[1].ID != older.ID {
		t.Errorf("stories must be ordered newest first")
	}
	if result.Total != 2 {
		t.Errorf("total = %d, want 2", result.Total)
	}
}
