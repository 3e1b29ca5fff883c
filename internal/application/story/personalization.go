package story

import (
	"fmt"
	"strings"

	"bedtime-story-api/internal/domain/entity"
)

// BuildFullPersonalization 渲染完整个性化子句
//
// 片段顺序固定：音调、主题、主角姓名、年龄，每个片段为一个完整句子。
// 非空时整体带一个前导空格，便于直接拼接到基础模板之后。
func BuildFullPersonalization(s *entity.PersonalizationSettings) string {
	if s == nil {
		return ""
	}

	fragments := make([]string, 0, 4)

	if tones := renderTones(s); len(tones) > 0 {
		fragments = append(fragments, fmt.Sprintf("The tone should be: %s.", strings.Join(tones, ", ")))
	}
	if topics := nonEmpty(s.Topics); len(topics) > 0 {
		fragments = append(fragments, fmt.Sprintf("The story should include: %s.", strings.Join(topics, ", ")))
	}
	if name := strings.TrimSpace(s.ChildName); name != "" {
		fragments = append(fragments, fmt.Sprintf("The main character should be a child named %s.", name))
	}
	if s.ChildAge > 0 {
		fragments = append(fragments, fmt.Sprintf("Make the story, language and vocabulary appropriate for age %d.", s.ChildAge))
	}

	return joinFragments(fragments)
}

// BuildAgeOnlyPersonalization 只渲染年龄片段
//
// 经典童话模式使用：音调和主题定制与讲述既有故事相冲突，
// 只调整语言难度
func BuildAgeOnlyPersonalization(s *entity.PersonalizationSettings) string {
	if s == nil || s.ChildAge <= 0 {
		return ""
	}
	return joinFragments([]string{
		fmt.Sprintf("Make the language and vocabulary appropriate for age %d.", s.ChildAge),
	})
}

// renderTones 渲染音调标签列表，Other 占位符在自定义文本存在时被替换
func renderTones(s *entity.PersonalizationSettings) []string {
	custom := strings.TrimSpace(s.ToneCustom)
	out := make([]string, 0, len(s.Tones))
	for _, tone := range s.Tones {
		tone = strings.TrimSpace(tone)
		if tone == "" {
			continue
		}
		if tone == entity.ToneOther && custom != "" {
			tone = custom
		}
		out = append(out, tone)
	}
	return out
}

func nonEmpty(list entity.StringList) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func joinFragments(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	return " " + strings.Join(fragments, " ")
}
