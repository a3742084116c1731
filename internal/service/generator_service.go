package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultGroqGeneratorModel   = "llama-3.3-70b-versatile"
	defaultOpenAIGeneratorModel = "gpt-4o-mini"

	postTemperature       = 0.8
	postMaxTokens         = 1500
	hashtagTemperature    = 0.6
	hashtagMaxTokens      = 200
	hookTemperature       = 0.9
	hookMaxTokens         = 300
	refineTemperature     = 0.7
	engagementTemperature = 0.3
	engagementMaxTokens   = 500
	emojiTemperature      = 0.6
	ctaTemperature        = 0.7
	ctaMaxTokens          = 300

	maxVariationCount = 3
)

// variationTemperatures 为多版本生成使用的递增创造性参数。
var variationTemperatures = [maxVariationCount]float64{0.7, 0.85, 0.95}

// ErrTopicRequired 表示生成帖子时缺少主题。
var ErrTopicRequired = errors.New("topic is required")

// ErrInvalidRefinement 表示改写类型未被识别，调用方不应触发外部请求。
var ErrInvalidRefinement = errors.New("invalid refinement type")

// GeneratePostInput 描述生成一篇帖子所需的参数。
type GeneratePostInput struct {
	Topic    string
	Tone     string
	Length   string
	PostType string
}

// PostGenerator 定义帖子生成能力，便于在业务层注入不同实现。
type PostGenerator interface {
	GeneratePost(ctx context.Context, input GeneratePostInput) (string, error)
	GenerateHashtags(ctx context.Context, topic string) (string, error)
	GenerateHooks(ctx context.Context, topic string) ([]string, error)
	RefinePost(ctx context.Context, post, kind string) (string, error)
	GenerateVariations(ctx context.Context, input GeneratePostInput, count int) ([]string, error)
	PredictEngagement(ctx context.Context, post string) (EngagementScore, error)
	AddEmojis(ctx context.Context, post, topic string) (string, error)
	GenerateCTAs(ctx context.Context, topic string) ([]string, error)
}

// GeneratorService 基于大模型接口生成与改写 LinkedIn 帖子。
type GeneratorService struct {
	client *aiChatClient
}

// NewGeneratorService 构造默认的 GeneratorService。
func NewGeneratorService(settings *SystemSettingService) *GeneratorService {
	return &GeneratorService{
		client: newAIChatClient(settings, defaultGroqGeneratorModel, defaultOpenAIGeneratorModel),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *GeneratorService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetGroqBaseURL 覆盖默认的 Groq API 地址。
func (s *GeneratorService) SetGroqBaseURL(base string) {
	s.client.SetGroqBaseURL(base)
}

// SetOpenAIBaseURL 覆盖默认的 OpenAI API 地址。
func (s *GeneratorService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetGroqModel 指定 Groq 生成所使用的模型名称。
func (s *GeneratorService) SetGroqModel(model string) {
	s.client.SetGroqModel(model)
}

// SetOpenAIModel 指定 OpenAI 生成所使用的模型名称。
func (s *GeneratorService) SetOpenAIModel(model string) {
	s.client.SetOpenAIModel(model)
}

// normalizeInput 规范化生成参数，未识别的语气/篇幅/类型回退默认值。
func normalizeInput(input GeneratePostInput) GeneratePostInput {
	tone := NormalizeTone(input.Tone)
	if tone == "" {
		tone = ToneProfessional
	}
	length := NormalizeLength(input.Length)
	if length == "" {
		length = LengthMedium
	}
	postType := NormalizePostType(input.PostType)
	if postType == "" {
		postType = PostTypeGeneral
	}
	return GeneratePostInput{
		Topic:    strings.TrimSpace(input.Topic),
		Tone:     tone,
		Length:   length,
		PostType: postType,
	}
}

// GeneratePost 生成一篇帖子，主题为空时返回 ErrTopicRequired。
func (s *GeneratorService) GeneratePost(ctx context.Context, input GeneratePostInput) (string, error) {
	normalized := normalizeInput(input)
	if normalized.Topic == "" {
		return "", ErrTopicRequired
	}

	prompt := postPrompt(normalized.Tone, normalized.Topic, normalized.Length, normalized.PostType)

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    postMaxTokens,
		Temperature:  postTemperature,
	})
	if err != nil {
		return "", err
	}

	logAIReply("POST", result.Content)
	return result.Content, nil
}

// GenerateHashtags 为主题生成话题标签字符串。
// 模型未按约定以 # 开头时，尽力从回复中抽取 # 开头的词。
func (s *GeneratorService) GenerateHashtags(ctx context.Context, topic string) (string, error) {
	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   hashtagPromptFor(topic),
		MaxTokens:    hashtagMaxTokens,
		Temperature:  hashtagTemperature,
	})
	if err != nil {
		return "", err
	}

	logAIReply("HASHTAG", result.Content)
	return extractHashtagReply(result.Content), nil
}

// GenerateHooks 生成 3 条开场钩子。解析失败时整段回复作为单个元素返回。
func (s *GeneratorService) GenerateHooks(ctx context.Context, topic string) ([]string, error) {
	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   hookPromptFor(topic),
		MaxTokens:    hookMaxTokens,
		Temperature:  hookTemperature,
	})
	if err != nil {
		return nil, err
	}

	logAIReply("HOOK", result.Content)
	return parseHookReply(result.Content), nil
}

// RefinePost 按指定改写类型重写帖子，未识别的类型返回 ErrInvalidRefinement。
func (s *GeneratorService) RefinePost(ctx context.Context, post, kind string) (string, error) {
	prompt, ok := refinementPrompt(kind, post)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidRefinement, kind)
	}

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    postMaxTokens,
		Temperature:  refineTemperature,
	})
	if err != nil {
		return "", err
	}

	logAIReply("REFINE", result.Content)
	return result.Content, nil
}

// GenerateVariations 以递增温度独立生成多个版本，数量上限为 3。
func (s *GeneratorService) GenerateVariations(ctx context.Context, input GeneratePostInput, count int) ([]string, error) {
	normalized := normalizeInput(input)
	if normalized.Topic == "" {
		return nil, ErrTopicRequired
	}

	if count > maxVariationCount {
		count = maxVariationCount
	}
	if count <= 0 {
		count = 1
	}

	prompt := postPrompt(normalized.Tone, normalized.Topic, normalized.Length, PostTypeGeneral)

	variations := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result, err := s.client.call(ctx, aiChatRequest{
			SystemPrompt: systemPrompt,
			UserPrompt:   prompt,
			MaxTokens:    postMaxTokens,
			Temperature:  variationTemperatures[i],
		})
		if err != nil {
			return nil, err
		}
		logAIReply("VARIATION", result.Content)
		variations = append(variations, result.Content)
	}

	return variations, nil
}

// PredictEngagement 预测帖子的互动得分。
// 模型回复格式不符时按零值降级，绝不因回复本身报错。
func (s *GeneratorService) PredictEngagement(ctx context.Context, post string) (EngagementScore, error) {
	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   engagementPromptFor(post),
		MaxTokens:    engagementMaxTokens,
		Temperature:  engagementTemperature,
	})
	if err != nil {
		return EngagementScore{}, err
	}

	logAIReply("ENGAGEMENT", result.Content)
	return parseEngagementReply(result.Content), nil
}

// AddEmojis 在帖子中自然地补充表情符号，返回原样回复。
func (s *GeneratorService) AddEmojis(ctx context.Context, post, topic string) (string, error) {
	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   emojiPromptFor(post, topic),
		MaxTokens:    postMaxTokens,
		Temperature:  emojiTemperature,
	})
	if err != nil {
		return "", err
	}

	logAIReply("EMOJI", result.Content)
	return result.Content, nil
}

// GenerateCTAs 生成 3 条行动号召语句，解析失败时整段回复作为单个元素返回。
func (s *GeneratorService) GenerateCTAs(ctx context.Context, topic string) ([]string, error) {
	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   ctaPromptFor(topic),
		MaxTokens:    ctaMaxTokens,
		Temperature:  ctaTemperature,
	})
	if err != nil {
		return nil, err
	}

	logAIReply("CTA", result.Content)
	return parseCTAReply(result.Content), nil
}

// extractHashtagReply 清理话题标签回复：回复未以 # 开头时只保留 # 开头的词。
func extractHashtagReply(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	var tags []string
	for _, word := range strings.Fields(trimmed) {
		if strings.HasPrefix(word, "#") {
			tags = append(tags, word)
		}
	}
	return strings.Join(tags, " ")
}

// parseHookReply 解析以 Hook 开头的行，首个冒号之后的文本即钩子内容。
func parseHookReply(reply string) []string {
	var hooks []string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "Hook") {
			continue
		}
		if _, after, found := strings.Cut(trimmed, ":"); found {
			hooks = append(hooks, strings.TrimSpace(after))
		} else {
			hooks = append(hooks, trimmed)
		}
	}

	if len(hooks) == 0 {
		return []string{reply}
	}
	return hooks
}

// parseCTAReply 解析编号或短横线开头的行。
func parseCTAReply(reply string) []string {
	var ctas []string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		first := trimmed[0]
		if !(first >= '0' && first <= '9') && !strings.HasPrefix(trimmed, "-") {
			continue
		}
		if _, after, found := strings.Cut(trimmed, "."); found {
			ctas = append(ctas, strings.TrimSpace(after))
		} else {
			ctas = append(ctas, strings.Trim(trimmed, "- "))
		}
	}

	if len(ctas) == 0 {
		return []string{reply}
	}
	return ctas
}
