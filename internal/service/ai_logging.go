package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

const maxAILogSnippetRunes = 1024

// logAIReply 输出模型回复的关键信息，方便排查模型行为。
// 生成帖子属于用户可见内容，超长片段会被截断以避免刷屏。
func logAIReply(kind, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		log.Printf("[AI %s] reply: <empty>", kind)
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxAILogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxAILogSnippetRunes]) + "…(truncated)"
	}
	log.Printf("[AI %s] reply (runes=%d): %s", kind, runeCount, snippet)
}
