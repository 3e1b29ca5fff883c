// Package llm 提供 LLM 客户端工厂
package llm

import (
	"context"
	"fmt"
	"sync"

	"bedtime-story-api/internal/config"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// EinoFactory 管理多个 Eino ChatModel 客户端实例
//
// 生成和翻译可以使用不同的后端，只要它们兼容 OpenAI 协议
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定名称的 ChatModel，如果未指定则返回生成用默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if name == "" {
		name = f.config.GenerationProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}
	if providerCfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s has no API key configured", name)
	}

	// 使用 Eino 的 OpenAI 适配器
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      providerCfg.APIKey,
		BaseURL:     providerCfg.BaseURL,
		Model:       providerCfg.Model,
		MaxTokens:   &providerCfg.MaxTokens,
		Temperature: ptrFloat32(float32(providerCfg.Temperature)),
		Timeout:     providerCfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Generation 返回故事生成使用的 ChatModel
func (f *EinoFactory) Generation(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, f.config.GenerationProvider)
}

// Translation 返回翻译使用的 ChatModel
func (f *EinoFactory) Translation(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, f.config.TranslationProvider)
}

// TranslationConfigured 判断翻译后端是否已配置
func (f *EinoFactory) TranslationConfigured() bool {
	name := f.config.TranslationProvider
	if name == "" {
		return false
	}
	providerCfg, ok := f.config.Providers[name]
	return ok && providerCfg.APIKey != ""
}

// ModelName 返回指定提供商配置的模型名
func (f *EinoFactory) ModelName(name string) string {
	if name == "" {
		name = f.config.GenerationProvider
	}
	if providerCfg, ok := f.config.Providers[name]; ok {
		return providerCfg.Model
	}
	return ""
}

func ptrFloat32(f float32) *float32 {
	return &f
}
