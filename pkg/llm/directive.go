package llm

import (
	"regexp"
	"strings"
)

// 助手可以在回复文本的任意位置嵌入一条生成指令：
//
//	[GENERATE_MOCKUP: <image prompt>]
//
// 捕获组即图片提示词，原样传给图片生成接口。语法故意保持收窄：
// 单一关键字、单一捕获组，不做任何扩展解析。
var (
	mockupPattern = regexp.MustCompile(`\[GENERATE_MOCKUP:\s*(.+?)\]`)
	doubleSpace   = regexp.MustCompile(`[ \t]{2,}`)
)

// ExtractMockupDirective scans the final assistant text for an embedded mockup
// directive. When found it returns the captured prompt, the display text with
// the directive removed (doubled spaces collapsed, ends trimmed) and true.
// When absent, the text is returned character-for-character unchanged.
//
// Only the first directive is honored; any later directive tokens stay in the
// display text untouched.
func ExtractMockupDirective(text string) (prompt, cleaned string, found bool) {
	loc := mockupPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text, false
	}

	prompt = text[loc[2]:loc[3]]
	cleaned = text[:loc[0]] + text[loc[1]:]
	cleaned = doubleSpace.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	return prompt, cleaned, true
}
