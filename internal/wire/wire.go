// Package wire 负责应用依赖装配
package wire

import (
	"context"
	"fmt"
	"time"

	"bedtime-story-api/internal/application/story"
	"bedtime-story-api/internal/config"
	"bedtime-story-api/internal/infrastructure/llm"
	"bedtime-story-api/internal/infrastructure/persistence/postgres"
	redisinfra "bedtime-story-api/internal/infrastructure/persistence/redis"
	"bedtime-story-api/internal/interfaces/http/handler"
	"bedtime-story-api/internal/interfaces/http/middleware"
	"bedtime-story-api/internal/interfaces/http/router"
	"bedtime-story-api/pkg/logger"
)

// InitializeApp 装配应用依赖，返回路由器和资源清理函数
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// 基础设施
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	cleanups = append(cleanups, func() {
		if err := pgClient.Close(); err != nil {
			logger.Warn(ctx, "failed to close postgres client", "error", err.Error())
		}
	})

	redisClient, err := redisinfra.NewClient(&cfg.Cache.Redis)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to init redis: %w", err)
	}
	cleanups = append(cleanups, func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn(ctx, "failed to close redis client", "error", err.Error())
		}
	})

	cache := redisinfra.NewCache(redisClient)

	// 仓储
	userRepo := postgres.NewUserRepository(pgClient)
	storyRepo := postgres.NewStoryRepository(pgClient)
	txManager := postgres.NewTxManager(pgClient)

	// LLM 与生成流水线
	factory := llm.NewEinoFactory(cfg)
	genProvider := cfg.LLM.GenerationProvider
	generator := story.NewGenerator(factory, story.GenerationConfig{
		Provider:    genProvider,
		Model:       factory.ModelName(genProvider),
		Temperature: story.GenerationTemperature,
		MaxTokens:   story.GenerationMaxTokens,
		Persona:     story.Persona,
		Timeout:     cfg.LLM.Providers[genProvider].Timeout,
	})

	transProvider := cfg.LLM.TranslationProvider
	translator := story.NewTranslator(factory, story.TranslationConfig{
		Provider:   transProvider,
		Model:      factory.ModelName(transProvider),
		Configured: factory.TranslationConfigured(),
		Timeout:    cfg.LLM.Providers[transProvider].Timeout,
	})

	storyService := story.NewService(
		story.NewPromptBuilder(),
		generator,
		translator,
		story.NewCatalog(),
		storyRepo,
		cache,
	)

	// 处理器
	authCfg := middleware.AuthConfig{
		Secret: cfg.Security.JWT.Secret,
		Issuer: cfg.Security.JWT.Issuer,
	}
	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(authCfg, userRepo, txManager),
		Story:  handler.NewStoryHandler(storyService),
		Tale:   handler.NewTaleHandler(storyService),
		User:   handler.NewUserHandler(userRepo),
		Health: handler.NewHealthHandler(pgClient, redisClient),
	}

	// 限流器：按秒滑动窗口
	var limiter middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled {
		limit := cfg.Security.RateLimit.RequestsPerSecond
		if cfg.Security.RateLimit.Burst > limit {
			limit = cfg.Security.RateLimit.Burst
		}
		limiter = redisinfra.NewRateLimiter(redisClient, time.Second, limit)
	}

	return router.New(cfg, handlers, limiter), cleanup, nil
}
