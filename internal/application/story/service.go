package story

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bedtime-story-api/internal/domain/entity"
	"bedtime-story-api/internal/domain/repository"
	redisinfra "bedtime-story-api/internal/infrastructure/persistence/redis"
	apperrors "bedtime-story-api/pkg/errors"
	"bedtime-story-api/pkg/logger"
	"bedtime-story-api/pkg/metrics"
)

var serviceTracer = otel.Tracer("application.story")

const storyListCacheTTL = 5 * time.Minute

// GenerateInput 生成请求
type GenerateInput struct {
	Mode            entity.StoryMode
	DurationMinutes int
	Modification    string
	Language        string
	Settings        *entity.PersonalizationSettings
	TaleID          string
}

// GenerateOutput 生成结果
type GenerateOutput struct {
	Title     string
	Body      string
	Language  string
	Mode      entity.StoryMode
	TaleID    string
	TaleTitle string
}

// Service 故事应用服务，编排生成流水线并管理收藏
type Service struct {
	builder    *PromptBuilder
	generator  *Generator
	translator *Translator
	catalog    *Catalog
	stories    repository.StoryRepository
	cache      *redisinfra.Cache
}

// NewService 创建故事应用服务
func NewService(
	builder *PromptBuilder,
	generator *Generator,
	translator *Translator,
	catalog *Catalog,
	stories repository.StoryRepository,
	cache *redisinfra.Cache,
) *Service {
	return &Service{
		builder:    builder,
		generator:  generator,
		translator: translator,
		catalog:    catalog,
		stories:    stories,
		cache:      cache,
	}
}

// Generate 执行完整的生成流水线
//
// 校验 → 解析童话 → 构建提示词 → 生成 → 翻译，严格顺序，
// 每个后端至多调用一次
func (s *Service) Generate(ctx context.Context, in *GenerateInput) (*GenerateOutput, error) {
	ctx, span := serviceTracer.Start(ctx, "story.Generate",
		trace.WithAttributes(
			attribute.String("story.mode", string(in.Mode)),
			attribute.String("story.language", in.Language),
			attribute.Int("story.duration_minutes", in.DurationMinutes),
		))
	defer span.End()

	if err := s.validate(in); err != nil {
		return nil, err
	}

	taleID, taleTitle, err := s.resolveTale(ctx, in)
	if err != nil {
		return nil, err
	}

	promptText, err := s.builder.Build(in.Mode, in.DurationMinutes, in.Modification, in.Settings, taleTitle)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "invalid generation request")
	}

	start := time.Now()
	result := s.generator.Generate(ctx, promptText)
	metrics.StoryGenerationDuration.WithLabelValues(string(in.Mode)).Observe(time.Since(start).Seconds())

	if !result.Succeeded {
		metrics.StoryGenerationTotal.WithLabelValues(string(in.Mode), "error").Inc()
		span.SetAttributes(attribute.Bool("story.succeeded", false))
		return nil, apperrors.New(apperrors.CodeGenerationFailed, "story generation failed").
			WithDetail(result.ErrorMessage)
	}

	text := s.translator.Translate(ctx, result.Body, in.Language)
	title, body := SplitTitleBody(text)

	metrics.StoryGenerationTotal.WithLabelValues(string(in.Mode), "success").Inc()
	span.SetAttributes(attribute.Bool("story.succeeded", true))
	logger.Info(ctx, "story generated",
		"mode", string(in.Mode),
		"language", in.Language,
		"tale_id", taleID,
	)

	return &GenerateOutput{
		Title:     title,
		Body:      body,
		Language:  in.Language,
		Mode:      in.Mode,
		TaleID:    taleID,
		TaleTitle: taleTitle,
	}, nil
}

func (s *Service) validate(in *GenerateInput) error {
	if in == nil {
		return apperrors.New(apperrors.CodeInvalidParam, "request is required")
	}
	if !in.Mode.Valid() {
		return apperrors.New(apperrors.CodeInvalidParam, "unknown story mode").
			WithDetail(string(in.Mode))
	}
	if in.DurationMinutes <= 0 {
		return apperrors.New(apperrors.CodeInvalidParam, "duration_minutes must be positive")
	}
	if in.Mode.RequiresModification() && strings.TrimSpace(in.Modification) == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "modification is required for this mode")
	}
	if !SupportedLanguage(in.Language) {
		return apperrors.New(apperrors.CodeInvalidParam, "unsupported language").
			WithDetail(in.Language)
	}
	return nil
}

// resolveTale 解析经典童话标题
//
// "surprise" 解析为随机挑选；目录不可用时回退到空标题，
// 由提示词构建器选择不指定童话的模板
func (s *Service) resolveTale(ctx context.Context, in *GenerateInput) (taleID, taleTitle string, err error) {
	if !in.Mode.IsClassic() || in.TaleID == "" {
		return "", "", nil
	}

	if in.TaleID == entity.SurpriseTaleID {
		tale := s.catalog.PickRandom(ctx)
		if tale == nil {
			return "", "", nil
		}
		return tale.ID, tale.Title, nil
	}

	tale := s.catalog.Get(ctx, in.TaleID)
	if tale == nil {
		return "", "", apperrors.New(apperrors.CodeTaleNotFound, "classic tale not found").
			WithDetail(in.TaleID)
	}
	return tale.ID, tale.Title, nil
}

// Tales 返回童话目录
func (s *Service) Tales(ctx context.Context) []entity.ClassicTale {
	return s.catalog.All(ctx)
}

// SaveInput 收藏请求
type SaveInput struct {
	Title    string
	Body     string
	Language string
	Mode     entity.StoryMode
	Rating   int
}

// Save 收藏一个故事
func (s *Service) Save(ctx context.Context, userID string, in *SaveInput) (*entity.Story, error) {
	ctx, span := serviceTracer.Start(ctx, "story.Save")
	defer span.End()

	if in == nil || strings.TrimSpace(in.Body) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "story body is required")
	}
	if !entity.ValidRating(in.Rating) {
		return nil, apperrors.New(apperrors.CodeInvalidRating, "rating must be between 1 and 5")
	}
	if in.Mode != "" && !in.Mode.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "unknown story mode").
			WithDetail(string(in.Mode))
	}

	story := entity.NewStory(userID, in.Title, in.Body, in.Language, in.Mode, in.Rating)
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save story")
	}

	s.invalidateListCache(ctx, userID)
	return story, nil
}

// List 返回用户收藏的故事，最近保存的在前
func (s *Service) List(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Story], error) {
	ctx, span := serviceTracer.Start(ctx, "story.List")
	defer span.End()

	load := func() (*repository.PagedResult[*entity.Story], error) {
		result, err := s.stories.ListByUser(ctx, userID, pagination)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list stories")
		}
		return result, nil
	}

	if s.cache == nil {
		return load()
	}

	key := redisinfra.BuildStoryListKey(userID, pagination.Page, pagination.PageSize)
	bytes, err := s.cache.GetOrLoadSafe(ctx, key, storyListCacheTTL, func() (interface{}, error) {
		return load()
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, apperrors.AsAppError(err)
		}
		// 缓存层故障时直接读库
		logger.Warn(ctx, "story list cache unavailable", "error", err.Error())
		return load()
	}

	var result repository.PagedResult[*entity.Story]
	if err := json.Unmarshal(bytes, &result); err != nil {
		return load()
	}
	return &result, nil
}

// UpdateRating 更新收藏故事的评分
//
// 非本人的故事返回 not found，不泄露他人故事的存在性
func (s *Service) UpdateRating(ctx context.Context, userID, storyID string, rating int) error {
	ctx, span := serviceTracer.Start(ctx, "story.UpdateRating")
	defer span.End()

	if !entity.ValidRating(rating) {
		return apperrors.New(apperrors.CodeInvalidRating, "rating must be between 1 and 5")
	}

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load story")
	}
	if story == nil || story.UserID != userID {
		return apperrors.New(apperrors.CodeStoryNotFound, "story not found")
	}

	if err := s.stories.UpdateRating(ctx, storyID, rating); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update rating")
	}

	s.invalidateListCache(ctx, userID)
	return nil
}

// Delete 删除收藏的故事
func (s *Service) Delete(ctx context.Context, userID, storyID string) error {
	ctx, span := serviceTracer.Start(ctx, "story.Delete")
	defer span.End()

	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load story")
	}
	if story == nil || story.UserID != userID {
		return apperrors.New(apperrors.CodeStoryNotFound, "story not found")
	}

	if err := s.stories.Delete(ctx, storyID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete story")
	}

	s.invalidateListCache(ctx, userID)
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, redisinfra.BuildStoryListPattern(userID)); err != nil {
		logger.Warn(ctx, "failed to invalidate story list cache",
			"user_id", userID,
			"error", err.Error(),
		)
	}
}
