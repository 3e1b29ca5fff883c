package story

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"bedtime-story-api/internal/application/story/prompt"
	"bedtime-story-api/pkg/logger"
	"bedtime-story-api/pkg/metrics"
)

// NativeLanguage 生成后端的原生语言，等于目标语言时跳过翻译
const NativeLanguage = "English"

const defaultTranslationTimeout = time.Minute

// SupportedLanguages 支持的目标语言
var SupportedLanguages = []string{
	"English",
	"Spanish",
	"French",
	"Portuguese",
	"German",
	"Italian",
}

// SupportedLanguage 检查目标语言是否受支持
func SupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// TranslationConfig 翻译后端配置，构建后不可变
type TranslationConfig struct {
	Provider   string
	Model      string
	Configured bool
	Timeout    time.Duration
}

// Translator 翻译适配器
//
// 翻译是尽力而为的增强：任何失败都降级为返回原文，绝不阻断流水线
type Translator struct {
	factory  ChatModelFactory
	registry *prompt.Registry
	cfg      TranslationConfig
}

// NewTranslator 创建翻译适配器
func NewTranslator(factory ChatModelFactory, cfg TranslationConfig) *Translator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTranslationTimeout
	}
	return &Translator{
		factory:  factory,
		registry: prompt.Default(),
		cfg:      cfg,
	}
}

// Translate 把故事文本翻译到目标语言
//
// 目标语言为英语时不调用后端；后端未配置或调用失败时记录警告并返回原文
func (t *Translator) Translate(ctx context.Context, body, targetLanguage string) string {
	if targetLanguage == NativeLanguage {
		metrics.StoryTranslationTotal.WithLabelValues(targetLanguage, "skipped").Inc()
		return body
	}

	if !t.cfg.Configured {
		logger.Warn(ctx, "translation backend not configured, returning untranslated story",
			"language", targetLanguage,
		)
		metrics.StoryTranslationTotal.WithLabelValues(targetLanguage, "degraded").Inc()
		return body
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	translated, err := t.call(ctx, body, targetLanguage)
	if err != nil {
		logger.Warn(ctx, "translation failed, returning untranslated story",
			"language", targetLanguage,
			"provider", t.cfg.Provider,
			"error", err.Error(),
		)
		metrics.StoryTranslationTotal.WithLabelValues(targetLanguage, "degraded").Inc()
		return body
	}

	metrics.StoryTranslationTotal.WithLabelValues(targetLanguage, "ok").Inc()
	return translated
}

func (t *Translator) call(ctx context.Context, body, targetLanguage string) (string, error) {
	if t.factory == nil {
		return "", errFactoryNotConfigured
	}

	instruction, err := t.registry.Render(prompt.PromptTranslate, map[string]string{
		"language": targetLanguage,
		"story":    body,
	})
	if err != nil {
		return "", err
	}

	chatModel, err := t.factory.Get(ctx, t.cfg.Provider)
	if err != nil {
		return "", err
	}

	start := time.Now()
	outMsg, err := chatModel.Generate(ctx,
		[]*schema.Message{schema.UserMessage(instruction)},
		model.WithModel(t.cfg.Model),
	)
	metrics.LLMCallDuration.WithLabelValues(t.cfg.Provider, t.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(t.cfg.Provider, t.cfg.Model, "error").Inc()
		return "", err
	}
	if outMsg == nil {
		metrics.LLMCallTotal.WithLabelValues(t.cfg.Provider, t.cfg.Model, "error").Inc()
		return "", errEmptyResponse
	}

	metrics.LLMCallTotal.WithLabelValues(t.cfg.Provider, t.cfg.Model, "success").Inc()
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		usage := outMsg.ResponseMeta.Usage
		metrics.LLMTokensUsed.WithLabelValues(t.cfg.Provider, t.cfg.Model, "prompt").Add(float64(usage.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(t.cfg.Provider, t.cfg.Model, "completion").Add(float64(usage.CompletionTokens))
	}

	translated := strings.TrimSpace(outMsg.Content)
	if translated == "" {
		return "", errEmptyResponse
	}
	return translated, nil
}
