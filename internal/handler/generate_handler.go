package handler

import (
	"errors"
	"net/http"

	"github.com/postforge/internal/service"
	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	PostType string `json:"postType"`
}

type topicRequest struct {
	Topic string `json:"topic"`
}

type refineRequest struct {
	Post string `json:"post"`
	Kind string `json:"kind"`
}

type variationsRequest struct {
	generateRequest
	Count int `json:"count"`
}

type postBodyRequest struct {
	Post string `json:"post"`
}

type emojiRequest struct {
	Post  string `json:"post"`
	Topic string `json:"topic"`
}

// respondGenerationError 统一映射生成链路的错误。
// 未配置 API Key 返回 503，入参问题返回 400，其余视为上游故障。
func respondGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAIAPIKeyMissing):
		respondError(c, http.StatusServiceUnavailable, "AI 服务未配置，请先在系统设置中填写 API Key")
	case errors.Is(err, service.ErrTopicRequired):
		respondError(c, http.StatusBadRequest, "请填写帖子主题")
	case errors.Is(err, service.ErrInvalidRefinement):
		respondError(c, http.StatusBadRequest, "不支持的改写类型")
	default:
		respondError(c, http.StatusBadGateway, err.Error())
	}
}

// GeneratePost 生成一篇 LinkedIn 帖子。
func (a *API) GeneratePost(c *gin.Context) {
	var payload generateRequest
	if !bindJSON(c, &payload, "请填写有效的生成参数") {
		return
	}

	content, err := a.generator.GeneratePost(c.Request.Context(), service.GeneratePostInput{
		Topic:    payload.Topic,
		Tone:     payload.Tone,
		Length:   payload.Length,
		PostType: payload.PostType,
	})
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// GenerateHashtags 为主题生成话题标签。
func (a *API) GenerateHashtags(c *gin.Context) {
	var payload topicRequest
	if !bindJSON(c, &payload, "请填写有效的主题") {
		return
	}

	hashtags, err := a.generator.GenerateHashtags(c.Request.Context(), payload.Topic)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hashtags": hashtags})
}

// GenerateHooks 为主题生成开场钩子。
func (a *API) GenerateHooks(c *gin.Context) {
	var payload topicRequest
	if !bindJSON(c, &payload, "请填写有效的主题") {
		return
	}

	hooks, err := a.generator.GenerateHooks(c.Request.Context(), payload.Topic)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hooks": hooks})
}

// GenerateVariations 生成同一主题的多个版本。
func (a *API) GenerateVariations(c *gin.Context) {
	var payload variationsRequest
	if !bindJSON(c, &payload, "请填写有效的生成参数") {
		return
	}

	variations, err := a.generator.GenerateVariations(c.Request.Context(), service.GeneratePostInput{
		Topic:    payload.Topic,
		Tone:     payload.Tone,
		Length:   payload.Length,
		PostType: payload.PostType,
	}, payload.Count)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variations": variations})
}

// GenerateCTAs 为主题生成行动号召语句。
func (a *API) GenerateCTAs(c *gin.Context) {
	var payload topicRequest
	if !bindJSON(c, &payload, "请填写有效的主题") {
		return
	}

	ctas, err := a.generator.GenerateCTAs(c.Request.Context(), payload.Topic)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ctas": ctas})
}

// RefinePost 按指定改写类型重写帖子。
func (a *API) RefinePost(c *gin.Context) {
	var payload refineRequest
	if !bindJSON(c, &payload, "请填写有效的改写参数") {
		return
	}

	refined, err := a.generator.RefinePost(c.Request.Context(), payload.Post, payload.Kind)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": refined})
}

// PredictEngagement 预测帖子的互动得分。
func (a *API) PredictEngagement(c *gin.Context) {
	var payload postBodyRequest
	if !bindJSON(c, &payload, "请填写帖子内容") {
		return
	}

	score, err := a.generator.PredictEngagement(c.Request.Context(), payload.Post)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// AddEmojis 为帖子补充表情符号。
func (a *API) AddEmojis(c *gin.Context) {
	var payload emojiRequest
	if !bindJSON(c, &payload, "请填写帖子内容") {
		return
	}

	content, err := a.generator.AddEmojis(c.Request.Context(), payload.Post, payload.Topic)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}
