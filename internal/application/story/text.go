package story

import "strings"

// SplitTitleBody 按标题格式约定切分生成文本
//
// 约定：首行为标题，随后一个空行，其余为正文。
// 文本不符合约定时标题为空，整段文本作为正文返回。
func SplitTitleBody(text string) (title, body string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	first, rest, found := strings.Cut(text, "\n")
	if !found {
		return "", text
	}

	title = strings.TrimSpace(first)
	body = strings.TrimSpace(rest)
	if title == "" || body == "" {
		return "", text
	}

	// 模型偶尔会给标题加 Markdown 标记
	title = strings.TrimSpace(strings.Trim(title, "#*"))
	return title, body
}
