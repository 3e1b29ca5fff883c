package story

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"bedtime-story-api/pkg/logger"
	"bedtime-story-api/pkg/metrics"
)

// Persona 生成后端使用的固定系统指令
const Persona = `You are a creative storyteller who writes engaging, soothing bedtime stories for children.
Your stories are imaginative, age-appropriate for 4 to 10 year old, funny, and help children relax before sleep.
Use simple vocabulary`

// 固定解码参数，不随请求变化
const (
	GenerationTemperature    = 0.7
	GenerationMaxTokens      = 2048
	defaultGenerationTimeout = 2 * time.Minute
)

var (
	errFactoryNotConfigured = errors.New("llm factory not configured")
	errEmptyResponse        = errors.New("empty llm response")
)

// GenerationConfig 生成后端配置，构建后不可变
type GenerationConfig struct {
	Provider    string
	Model       string
	Temperature float32
	MaxTokens   int
	Persona     string
	Timeout     time.Duration
}

// DefaultGenerationConfig 返回使用固定参数的生成配置
func DefaultGenerationConfig(provider, modelName string) GenerationConfig {
	return GenerationConfig{
		Provider:    provider,
		Model:       modelName,
		Temperature: GenerationTemperature,
		MaxTokens:   GenerationMaxTokens,
		Persona:     Persona,
		Timeout:     defaultGenerationTimeout,
	}
}

// Result 一次生成调用的结果
//
// 后端失败被完全吸收到结果值中，Generate 不向上抛错
type Result struct {
	Succeeded    bool
	Body         string
	ErrorMessage string
}

// Generator 生成编排器，单次调用后端，不做重试
type Generator struct {
	factory ChatModelFactory
	cfg     GenerationConfig
}

// NewGenerator 创建生成编排器
func NewGenerator(factory ChatModelFactory, cfg GenerationConfig) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerationTimeout
	}
	return &Generator{
		factory: factory,
		cfg:     cfg,
	}
}

// Generate 发送固定人设和提示词到生成后端
//
// 任何失败（网络、超时、空响应）都转化为 Succeeded=false 的结果
func (g *Generator) Generate(ctx context.Context, promptText string) *Result {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	body, err := g.call(ctx, promptText)
	duration := time.Since(start).Seconds()

	metrics.LLMCallDuration.WithLabelValues(g.cfg.Provider, g.cfg.Model).Observe(duration)
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(g.cfg.Provider, g.cfg.Model, "error").Inc()
		logger.Warn(ctx, "story generation failed",
			"provider", g.cfg.Provider,
			"model", g.cfg.Model,
			"error", err.Error(),
		)
		return &Result{
			Succeeded:    false,
			ErrorMessage: err.Error(),
		}
	}

	metrics.LLMCallTotal.WithLabelValues(g.cfg.Provider, g.cfg.Model, "success").Inc()
	return &Result{
		Succeeded: true,
		Body:      body,
	}
}

func (g *Generator) call(ctx context.Context, promptText string) (string, error) {
	if g.factory == nil {
		return "", errFactoryNotConfigured
	}

	chatModel, err := g.factory.Get(ctx, g.cfg.Provider)
	if err != nil {
		return "", err
	}

	msgs := []*schema.Message{
		schema.SystemMessage(g.cfg.Persona),
		schema.UserMessage(promptText),
	}

	opts := make([]model.Option, 0, 3)
	opts = append(opts, model.WithTemperature(g.cfg.Temperature))
	opts = append(opts, model.WithMaxTokens(g.cfg.MaxTokens))
	if g.cfg.Model != "" {
		opts = append(opts, model.WithModel(g.cfg.Model))
	}

	outMsg, err := chatModel.Generate(ctx, msgs, opts...)
	if err != nil {
		return "", err
	}
	if outMsg == nil {
		return "", errEmptyResponse
	}

	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		usage := outMsg.ResponseMeta.Usage
		metrics.LLMTokensUsed.WithLabelValues(g.cfg.Provider, g.cfg.Model, "prompt").Add(float64(usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(g.cfg.Provider, g.cfg.Model, "completion").Add(float64(usage.CompletionTokens))
	}

	body := strings.TrimSpace(outMsg.Content)
	if body == "" {
		return "", errEmptyResponse
	}
	return body, nil
}
