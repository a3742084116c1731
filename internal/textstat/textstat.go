// Package textstat 提供帖子文本的统计与格式化纯函数，不依赖外部服务。
package textstat

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// defaultWordsPerMinute 为估算阅读时长使用的平均阅读速度。
const defaultWordsPerMinute = 200

var (
	hashtagPattern    = regexp.MustCompile(`#(\w+)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
	emojiPattern      = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
	urlPattern        = regexp.MustCompile(`https?://`)
)

// CountWords 统计以空白分隔的词数。
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters 统计字符数，includeSpaces 为 false 时忽略空格。
func CountCharacters(text string, includeSpaces bool) int {
	if !includeSpaces {
		text = strings.ReplaceAll(text, " ", "")
	}
	return utf8.RuneCountInString(text)
}

// CountSentences 统计句子数：按 .!? 连续出现切分后的段数减一。
func CountSentences(text string) int {
	return len(sentencePattern.Split(text, -1)) - 1
}

// ExtractHashtags 提取文本中的话题标签，返回值不含 # 前缀。
func ExtractHashtags(text string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tags = append(tags, match[1])
	}
	return tags
}

// CountHashtags 统计文本中的话题标签数量。
func CountHashtags(text string) int {
	return len(ExtractHashtags(text))
}

// FormatHashtags 规整话题标签字符串：逗号视为分隔符，每个标签恰好一个 # 前缀。
func FormatHashtags(hashtags string) string {
	if strings.TrimSpace(hashtags) == "" {
		return ""
	}

	fields := strings.Fields(strings.ReplaceAll(hashtags, ",", " "))
	formatted := make([]string, 0, len(fields))
	for _, field := range fields {
		if !strings.HasPrefix(field, "#") {
			field = "#" + field
		}
		formatted = append(formatted, field)
	}
	return strings.Join(formatted, " ")
}

// EstimateReadTime 估算以秒为单位的阅读时长，wordsPerMinute<=0 时使用默认阅读速度。
func EstimateReadTime(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = defaultWordsPerMinute
	}
	minutes := float64(CountWords(text)) / float64(wordsPerMinute)
	return int(minutes * 60)
}

// CleanText 合并连续空白并去除首尾空白。
func CleanText(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// TruncateText 将文本截断到 maxLength 个字符，超出时以省略号结尾。
func TruncateText(text string, maxLength int) string {
	const suffix = "..."
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(string(runes[:cut]), " ") + suffix
}

// PostPreview 返回帖子内容的前 maxLines 行预览。
func PostPreview(content string, maxLines int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxLines {
		return content
	}
	return strings.Join(lines[:maxLines], "\n") + "\n..."
}

// AddLineBreaks 按照 maxLineLength 对文本做逐词换行，便于阅读。
func AddLineBreaks(text string, maxLineLength int) string {
	words := strings.Fields(text)
	var lines []string
	var current []string
	currentLength := 0

	for _, word := range words {
		wordLength := len(word) + 1
		if currentLength+wordLength > maxLineLength && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			currentLength = len(word)
			continue
		}
		current = append(current, word)
		currentLength += wordLength
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return strings.Join(lines, "\n")
}

// ValidateContent 校验帖子内容长度，返回 nil 表示通过。
func ValidateContent(content string, minLength, maxLength int) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("post content cannot be empty")
	}

	length := utf8.RuneCountInString(content)
	if length < minLength {
		return fmt.Errorf("post is too short (minimum %d characters)", minLength)
	}
	if length > maxLength {
		return fmt.Errorf("post is too long (maximum %d characters)", maxLength)
	}
	return nil
}

// HasEmoji 判断文本是否包含常见表情符号。
func HasEmoji(text string) bool {
	return emojiPattern.MatchString(text)
}

// HasURL 判断文本是否包含 http/https 链接。
func HasURL(text string) bool {
	return urlPattern.MatchString(text)
}

// Statistics 汇总单篇帖子的各项文本统计指标。
type Statistics struct {
	CharacterCount         int  `json:"characterCount"`
	CharacterCountNoSpaces int  `json:"characterCountNoSpaces"`
	WordCount              int  `json:"wordCount"`
	LineCount              int  `json:"lineCount"`
	SentenceCount          int  `json:"sentenceCount"`
	HashtagCount           int  `json:"hashtagCount"`
	ReadTimeSeconds        int  `json:"readTimeSeconds"`
	HasEmoji               bool `json:"hasEmoji"`
	HasURL                 bool `json:"hasUrl"`
}

// Collect 计算帖子内容的完整统计信息。
func Collect(content string) Statistics {
	return Statistics{
		CharacterCount:         CountCharacters(content, true),
		CharacterCountNoSpaces: CountCharacters(content, false),
		WordCount:              CountWords(content),
		LineCount:              len(strings.Split(content, "\n")),
		SentenceCount:          CountSentences(content),
		HashtagCount:           CountHashtags(content),
		ReadTimeSeconds:        EstimateReadTime(content, defaultWordsPerMinute),
		HasEmoji:               HasEmoji(content),
		HasURL:                 HasURL(content),
	}
}

// EngagementFactors 描述影响互动率的内容特征。
type EngagementFactors struct {
	HasQuestion    bool `json:"hasQuestion"`
	HasCTA         bool `json:"hasCta"`
	HasEmoji       bool `json:"hasEmoji"`
	HasHashtags    bool `json:"hasHashtags"`
	WordCount      int  `json:"wordCount"`
	LineCount      int  `json:"lineCount"`
	OptimalLength  bool `json:"optimalLength"`
	GoodFormatting bool `json:"goodFormatting"`
}

var ctaKeywords = []string{"comment", "share", "thoughts", "think", "agree", "what do you"}

// CollectEngagementFactors 基于启发式规则评估内容的互动特征。
func CollectEngagementFactors(content string) EngagementFactors {
	lower := strings.ToLower(content)
	hasCTA := false
	for _, keyword := range ctaKeywords {
		if strings.Contains(lower, keyword) {
			hasCTA = true
			break
		}
	}

	wordCount := CountWords(content)
	lineCount := len(strings.Split(content, "\n"))

	return EngagementFactors{
		HasQuestion:    strings.Contains(content, "?"),
		HasCTA:         hasCTA,
		HasEmoji:       HasEmoji(content),
		HasHashtags:    CountHashtags(content) > 0,
		WordCount:      wordCount,
		LineCount:      lineCount,
		OptimalLength:  wordCount >= 50 && wordCount <= 150,
		GoodFormatting: lineCount >= 3,
	}
}
