package service

import (
	"strconv"
	"strings"
)

// EngagementScore 是一次互动预测的解析结果，不做持久化。
// 模型回复不可靠，任一字段解析失败都保持零值，Details 保留原始回复。
type EngagementScore struct {
	Hook         int    `json:"hook"`
	Content      int    `json:"content"`
	Readability  int    `json:"readability"`
	CTA          int    `json:"cta"`
	Authenticity int    `json:"authenticity"`
	Total        int    `json:"total"`
	Prediction   string `json:"prediction"`
	Details      string `json:"details"`
}

// parseEngagementReply 按固定行前缀解析互动评分回复。
// 行格式约定为 "Hook: 22/25 - reason"，取 / 之前、最后一个冒号之后的整数。
// 超出评分上限的数值原样接受，不做收敛。
func parseEngagementReply(reply string) EngagementScore {
	score := EngagementScore{Prediction: "Unknown", Details: reply}

	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Hook:"):
			score.Hook = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "Content:"):
			score.Content = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "Readability:"):
			score.Readability = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "CTA:"):
			score.CTA = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "Authenticity:"):
			score.Authenticity = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "Total:"):
			score.Total = parseScoreValue(trimmed)
		case strings.HasPrefix(trimmed, "Prediction:"):
			if _, after, found := strings.Cut(trimmed, ":"); found {
				score.Prediction = strings.TrimSpace(after)
			}
		}
	}

	return score
}

// parseScoreValue 提取 / 之前、最后一个冒号之后的整数，失败时返回 0。
func parseScoreValue(line string) int {
	head, _, _ := strings.Cut(line, "/")
	if idx := strings.LastIndex(head, ":"); idx >= 0 {
		head = head[idx+1:]
	}
	value, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return value
}
