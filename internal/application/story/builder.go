package story

import (
	"fmt"
	"strconv"
	"strings"

	"bedtime-story-api/internal/application/story/prompt"
	"bedtime-story-api/internal/domain/entity"
)

// PromptBuilder 把类型化的生成偏好组装成一条完整的提示词
type PromptBuilder struct {
	registry *prompt.Registry
}

// NewPromptBuilder 创建提示词构建器
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		registry: prompt.Default(),
	}
}

// Build 根据模式、时长、改编要求和个性化设置构建提示词
//
// 所有提示词以固定的标题格式指令开头，保证下游可以按
// 首行标题、空行、正文的约定切分结果。
// 经典模式下 taleTitle 为空时回退到不指定童话的模板。
func (b *PromptBuilder) Build(mode entity.StoryMode, minutes int, modification string, settings *entity.PersonalizationSettings, taleTitle string) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid story mode: %s", mode)
	}
	if minutes <= 0 {
		return "", fmt.Errorf("duration must be positive, got %d", minutes)
	}
	modification = strings.TrimSpace(modification)
	if mode.RequiresModification() && modification == "" {
		return "", fmt.Errorf("mode %s requires a modification text", mode)
	}

	vars := map[string]string{
		"word_count": strconv.Itoa(WordCount(minutes)),
	}

	var id prompt.PromptID
	taleTitle = strings.TrimSpace(taleTitle)
	switch mode {
	case entity.StoryModeOriginal:
		id = prompt.PromptOriginal
	case entity.StoryModeOriginalAbout:
		id = prompt.PromptOriginalAbout
		vars["topic"] = modification
	case entity.StoryModeClassic:
		id = prompt.PromptClassic
		if taleTitle != "" {
			id = prompt.PromptClassicNamed
			vars["tale_title"] = taleTitle
		}
	case entity.StoryModeClassicMixed:
		id = prompt.PromptClassicMixed
		if taleTitle != "" {
			id = prompt.PromptClassicMixedNamed
			vars["tale_title"] = taleTitle
		}
		vars["modifications"] = modification
	}

	base, err := b.registry.Render(id, vars)
	if err != nil {
		return "", err
	}
	titleInstruction, err := b.registry.Text(prompt.PromptTitleInstruction)
	if err != nil {
		return "", err
	}

	var clause string
	if mode.IsClassic() {
		clause = BuildAgeOnlyPersonalization(settings)
	} else {
		clause = BuildFullPersonalization(settings)
	}

	return titleInstruction + " " + base + clause, nil
}
