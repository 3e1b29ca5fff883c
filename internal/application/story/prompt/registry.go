// Package prompt 管理嵌入的提示词模板
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// PromptID 模板标识
type PromptID string

const (
	PromptTitleInstruction  PromptID = "title_instruction"
	PromptOriginal          PromptID = "original"
	PromptOriginalAbout     PromptID = "original_about"
	PromptClassic           PromptID = "classic"
	PromptClassicNamed      PromptID = "classic_named"
	PromptClassicMixed      PromptID = "classic_mixed"
	PromptClassicMixedNamed PromptID = "classic_mixed_named"
	PromptTranslate         PromptID = "translate"
)

// Registry 模板注册表，首次访问时从嵌入文件加载并缓存
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]string
}

// NewRegistry 创建模板注册表
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]string),
	}
}

var defaultRegistry = NewRegistry()

// Default 返回进程级共享的注册表，避免各组件重复缓存模板
func Default() *Registry {
	return defaultRegistry
}

// Text 返回指定模板的原始文本
func (r *Registry) Text(id PromptID) (string, error) {
	if r == nil {
		return "", fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	path, err := resolvePromptFile(id)
	if err != nil {
		return "", err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return "", err
	}

	r.cache[id] = text
	return text, nil
}

// Render 渲染模板，vars 中的键以 {key} 形式出现在模板里
func (r *Registry) Render(id PromptID, vars map[string]string) (string, error) {
	tpl, err := r.Text(id)
	if err != nil {
		return "", err
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl), nil
}

func resolvePromptFile(id PromptID) (string, error) {
	switch id {
	case PromptTitleInstruction:
		return "templates/title_instruction.txt", nil
	case PromptOriginal:
		return "templates/original.txt", nil
	case PromptOriginalAbout:
		return "templates/original_about.txt", nil
	case PromptClassic:
		return "templates/classic.txt", nil
	case PromptClassicNamed:
		return "templates/classic_named.txt", nil
	case PromptClassicMixed:
		return "templates/classic_mixed.txt", nil
	case PromptClassicMixedNamed:
		return "templates/classic_mixed_named.txt", nil
	case PromptTranslate:
		return "templates/translate.txt", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
