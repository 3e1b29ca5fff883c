package entity

import (
	"bytes"
	"encoding/json"
)

// ToneOther 音调标签中的自定义占位符
//
// 出现在 Tones 中时，若 ToneCustom 非空则替换为自定义文本
const ToneOther = "Other"

// StringList 宽松解析的字符串列表
//
// 个性化数据来自客户端本地存储，历史版本的格式不统一，
// 解析失败时视为缺失而不是报错
type StringList []string

// UnmarshalJSON 实现宽松的 JSON 解析
//
// 接受字符串数组（跳过非字符串元素）、单个字符串或 null；
// 其他形态一律解析为空列表
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err == nil {
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			// null 元素解析到 string 是无操作的成功，需要显式跳过
			if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
				continue
			}
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}

	*l = nil
	return nil
}

// PersonalizationSettings 故事个性化设置
type PersonalizationSettings struct {
	Tones      StringList `json:"tones,omitempty"`
	ToneCustom string     `json:"tone_custom,omitempty"`
	Topics     StringList `json:"topics,omitempty"`
	ChildName  string     `json:"child_name,omitempty"`
	ChildAge   int        `json:"child_age,omitempty"`
}
