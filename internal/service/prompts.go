package service

import "strings"

// 语气枚举，决定帖子生成模板。
const (
	ToneProfessional      = "professional"
	ToneCasual            = "casual"
	ToneMotivational      = "motivational"
	ToneEducational       = "educational"
	ToneStorytelling      = "storytelling"
	ToneThoughtLeadership = "thought-leadership"
)

// 篇幅枚举。
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// 帖子类型枚举，general 表示仅按语气选择模板。
const (
	PostTypeGeneral         = "general"
	PostTypeAnnouncement    = "announcement"
	PostTypeTips            = "tips"
	PostTypeQuestion        = "question"
	PostTypeAchievement     = "achievement"
	PostTypeIndustryInsight = "industry_insight"
)

// 改写类型枚举。
const (
	RefinementShorten          = "shorten"
	RefinementLengthen         = "lengthen"
	RefinementAddStorytelling  = "add_storytelling"
	RefinementMoreProfessional = "more_professional"
	RefinementAddCTA           = "add_cta"
)

var supportedTones = []string{
	ToneProfessional,
	ToneCasual,
	ToneMotivational,
	ToneEducational,
	ToneStorytelling,
	ToneThoughtLeadership,
}

var supportedLengths = []string{LengthShort, LengthMedium, LengthLong}

var supportedPostTypes = []string{
	PostTypeGeneral,
	PostTypeAnnouncement,
	PostTypeTips,
	PostTypeQuestion,
	PostTypeAchievement,
	PostTypeIndustryInsight,
}

// refinementAliases 兼容早期的命名方式。
var refinementAliases = map[string]string{
	"make_shorter": RefinementShorten,
	"make_longer":  RefinementLengthen,
}

// NormalizeTone 规范化语气取值，未识别时返回空串。
func NormalizeTone(tone string) string {
	trimmed := strings.ToLower(strings.TrimSpace(tone))
	for _, candidate := range supportedTones {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}

// NormalizeLength 规范化篇幅取值，未识别时返回空串。
func NormalizeLength(length string) string {
	trimmed := strings.ToLower(strings.TrimSpace(length))
	for _, candidate := range supportedLengths {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}

// NormalizePostType 规范化帖子类型，未识别时返回空串。
func NormalizePostType(postType string) string {
	trimmed := strings.ToLower(strings.TrimSpace(postType))
	for _, candidate := range supportedPostTypes {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}

// NormalizeRefinement 规范化改写类型并消解别名，未识别时返回空串。
func NormalizeRefinement(kind string) string {
	trimmed := strings.ToLower(strings.TrimSpace(kind))
	if canonical, ok := refinementAliases[trimmed]; ok {
		return canonical
	}
	switch trimmed {
	case RefinementShorten, RefinementLengthen, RefinementAddStorytelling,
		RefinementMoreProfessional, RefinementAddCTA:
		return trimmed
	}
	return ""
}

// systemPrompt 是所有生成调用共享的系统前导语。
const systemPrompt = `You are an expert LinkedIn content creator with years of experience in crafting
engaging, professional posts that drive high engagement. You understand LinkedIn's algorithm,
best practices for professional networking, and how to write compelling content that resonates
with professionals across various industries.`

// tonePrompts 按语气选择的生成模板，占位符为 {topic} 与 {length}。
var tonePrompts = map[string]string{
	ToneProfessional: `Create a professional LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Professional, authoritative, and insightful
- Include relevant industry terminology
- Start with a strong hook
- End with a thought-provoking question or call-to-action
- Use line breaks for readability
- NO hashtags in the main text

Write the post now:`,

	ToneCasual: `Create a casual but professional LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Friendly, conversational, relatable
- Use simple language and personal anecdotes
- Start with a relatable hook
- Add 1-2 relevant emojis (use sparingly)
- End with an engaging question
- Use line breaks for readability
- NO hashtags in the main text

Write the post now:`,

	ToneMotivational: `Create an inspiring, motivational LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Uplifting, inspiring, encouraging
- Include a powerful message or lesson
- Use storytelling elements
- Start with an attention-grabbing statement
- End with an inspiring call-to-action
- Use line breaks for readability
- Add 1-2 relevant emojis
- NO hashtags in the main text

Write the post now:`,

	ToneEducational: `Create an educational LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Informative, authoritative, helpful
- Share valuable insights or knowledge
- Use bullet points or numbered lists if appropriate
- Include actionable tips or key takeaways
- Start with a value proposition
- End with an invitation to discuss or share
- Use line breaks for readability
- NO hashtags in the main text

Write the post now:`,

	ToneStorytelling: `Create a compelling story-based LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Narrative, engaging, personal
- Follow a story arc (beginning, middle, end)
- Include specific details and emotions
- Make it relatable and authentic
- Start with a hook that draws readers in
- End with a lesson or reflection
- Use line breaks for readability
- Add 1-2 relevant emojis
- NO hashtags in the main text

Write the post now:`,

	ToneThoughtLeadership: `Create a thought-leadership LinkedIn post about: {topic}

Requirements:
- Length: {length} (Short: 2-4 lines, Medium: 5-8 lines, Long: 10-15 lines)
- Tone: Authoritative, visionary, intellectually stimulating
- Share unique insights or perspectives
- Challenge conventional thinking
- Use data or trends if relevant
- Start with a bold statement or question
- End with a forward-looking perspective
- Use line breaks for readability
- NO hashtags in the main text

Write the post now:`,
}

// postTypePrompts 按帖子类型选择的模板，占位符为 {topic}、{length}、{tone}。
var postTypePrompts = map[string]string{
	PostTypeAnnouncement: `Create a LinkedIn announcement post about: {topic}

This should announce news, updates, or achievements in a professional and exciting way.
Length: {length}
Tone: {tone}

Include:
- Clear announcement
- Key details
- Why it matters
- Call to action

NO hashtags in the main text.
Write the post:`,

	PostTypeTips: `Create a LinkedIn tips/advice post about: {topic}

Share actionable tips or best practices.
Length: {length}
Tone: {tone}

Format as:
- Introduction
- 3-5 numbered tips
- Quick summary
- Engagement question

NO hashtags in the main text.
Write the post:`,

	PostTypeQuestion: `Create a LinkedIn discussion post with a thought-provoking question about: {topic}

Length: {length}
Tone: {tone}

Include:
- Brief context (2-3 lines)
- Main question that sparks discussion
- Why this matters
- Invitation to share thoughts

NO hashtags in the main text.
Write the post:`,

	PostTypeAchievement: `Create a LinkedIn post celebrating an achievement related to: {topic}

Length: {length}
Tone: {tone}

Include:
- The achievement
- Brief journey/context
- Gratitude or lesson learned
- Humble brag done right

NO hashtags in the main text.
Write the post:`,

	PostTypeIndustryInsight: `Create a LinkedIn post sharing industry insights about: {topic}

Length: {length}
Tone: {tone}

Include:
- Current trend or observation
- Your analysis or perspective
- What it means for professionals
- Engaging question

NO hashtags in the main text.
Write the post:`,
}

// refinementPrompts 按改写类型选择的模板，占位符为 {post}。
var refinementPrompts = map[string]string{
	RefinementShorten: `Rewrite this LinkedIn post to be shorter while keeping the core message:

Original post:
{post}

Requirements:
- Cut length by 30-40%
- Keep the main message and impact
- Maintain readability
- NO hashtags

Shortened post:`,

	RefinementLengthen: `Expand this LinkedIn post with more details and depth:

Original post:
{post}

Requirements:
- Add relevant details, examples, or insights
- Increase length by 40-50%
- Maintain flow and engagement
- NO hashtags

Expanded post:`,

	RefinementAddStorytelling: `Rewrite this LinkedIn post using storytelling elements:

Original post:
{post}

Requirements:
- Add narrative structure
- Include personal or relatable elements
- Make it more engaging
- Maintain the core message
- NO hashtags

Rewritten post:`,

	RefinementMoreProfessional: `Make this LinkedIn post more professional and polished:

Original post:
{post}

Requirements:
- Elevate the language
- Add industry credibility
- Remove overly casual elements
- Maintain authenticity
- NO hashtags

Professional version:`,

	RefinementAddCTA: `Add a compelling call-to-action to this LinkedIn post:

Original post:
{post}

Requirements:
- Add an engaging CTA at the end
- Encourage comments, shares, or discussion
- Make it feel natural
- NO hashtags

Post with CTA:`,
}

const hashtagPrompt = `Generate 8-10 relevant and trending LinkedIn hashtags for this post topic: {topic}

Requirements:
- Mix of popular hashtags (100k+ followers) and niche hashtags (10k-50k followers)
- Relevant to the topic and professional context
- Include industry-specific hashtags
- Format: Return ONLY the hashtags separated by spaces, starting with #
- Example format: #Marketing #DigitalMarketing #ContentStrategy

Generate hashtags now:`

const hookPrompt = `Generate 3 attention-grabbing opening hooks for a LinkedIn post about: {topic}

Each hook should be:
- Maximum 1-2 lines
- Immediately engaging
- Use one of these techniques: question, bold statement, surprising fact, or personal confession
- Professional yet captivating

Format:
Hook 1: [first hook]
Hook 2: [second hook]
Hook 3: [third hook]

Generate hooks now:`

const engagementScorePrompt = `Analyze this LinkedIn post and provide an engagement prediction score:

Post:
{post}

Evaluate based on:
1. Hook quality (0-25 points): Is the opening line attention-grabbing?
2. Content value (0-25 points): Does it provide value, insights, or entertainment?
3. Readability (0-20 points): Line breaks, length, structure
4. Call-to-action (0-15 points): Does it encourage engagement?
5. Authenticity (0-15 points): Does it feel genuine and relatable?

Respond in this format only:
Hook: [score]/25 - [brief reason]
Content: [score]/25 - [brief reason]
Readability: [score]/20 - [brief reason]
CTA: [score]/15 - [brief reason]
Authenticity: [score]/15 - [brief reason]
Total: [total]/100
Prediction: [Poor/Fair/Good/Excellent]`

const emojiPrompt = `Add 2-3 relevant and professional emojis to this LinkedIn post.
Place them naturally where they enhance the message. Don't overdo it.

Topic: {topic}
Post:
{post}

Return the post with emojis added:`

const ctaPrompt = `Generate 3 engaging call-to-action (CTA) statements for a LinkedIn post about: {topic}

Each CTA should:
- Encourage engagement (comments, shares, discussion)
- Be natural and not pushy
- Be 1 line

Format:
1. [CTA 1]
2. [CTA 2]
3. [CTA 3]`

// postPrompt 解析帖子生成模板：有匹配的帖子类型时优先，
// 否则按语气选择，最终回退到 professional。
func postPrompt(tone, topic, length, postType string) string {
	if postType != "" && postType != PostTypeGeneral {
		if template, ok := postTypePrompts[NormalizePostType(postType)]; ok {
			return renderPrompt(template, map[string]string{
				"topic":  topic,
				"length": length,
				"tone":   tone,
			})
		}
	}

	template, ok := tonePrompts[NormalizeTone(tone)]
	if !ok {
		template = tonePrompts[ToneProfessional]
	}
	return renderPrompt(template, map[string]string{
		"topic":  topic,
		"length": length,
	})
}

// refinementPrompt 解析改写模板；改写类型未识别时返回 ok=false，
// 调用方必须视为非法入参而不是继续调用模型。
func refinementPrompt(kind, post string) (string, bool) {
	canonical := NormalizeRefinement(kind)
	template, ok := refinementPrompts[canonical]
	if !ok {
		return "", false
	}
	return renderPrompt(template, map[string]string{"post": post}), true
}

func hashtagPromptFor(topic string) string {
	return renderPrompt(hashtagPrompt, map[string]string{"topic": topic})
}

func hookPromptFor(topic string) string {
	return renderPrompt(hookPrompt, map[string]string{"topic": topic})
}

func engagementPromptFor(post string) string {
	return renderPrompt(engagementScorePrompt, map[string]string{"post": post})
}

func emojiPromptFor(post, topic string) string {
	return renderPrompt(emojiPrompt, map[string]string{"post": post, "topic": topic})
}

func ctaPromptFor(topic string) string {
	return renderPrompt(ctaPrompt, map[string]string{"topic": topic})
}

// renderPrompt 以命名占位符方式渲染模板，如 {topic}。
func renderPrompt(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
