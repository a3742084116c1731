package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/postforge/internal/db"
	"github.com/postforge/internal/service"
	"github.com/postforge/internal/textstat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type createPostRequest struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Length   string `json:"length"`
	PostType string `json:"postType"`
	Content  string `json:"content"`
	Hashtags string `json:"hashtags"`
}

type previewRequest struct {
	Content  string `json:"content"`
	Hashtags string `json:"hashtags"`
}

func postPayload(post db.Post, now time.Time) gin.H {
	return gin.H{
		"id":         post.ID,
		"topic":      post.Topic,
		"tone":       post.Tone,
		"length":     post.Length,
		"postType":   post.PostType,
		"content":    post.Content,
		"hashtags":   post.Hashtags,
		"isFavorite": post.IsFavorite,
		"createdAt":  post.CreatedAt,
		"createdAgo": textstat.RelativeTime(post.CreatedAt, now),
	}
}

// GetPosts 获取生成历史，支持按语气/篇幅/类型与收藏过滤。
func (a *API) GetPosts(c *gin.Context) {
	filter := service.PostFilter{
		Tone:     c.Query("tone"),
		Length:   c.Query("length"),
		PostType: c.Query("postType"),
	}
	if fav := c.Query("favorites"); fav == "1" || strings.EqualFold(fav, "true") {
		filter.FavoritesOnly = true
		filter.Limit = -1
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filter.Offset = offset
		}
	}

	posts, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取历史记录失败")
		return
	}

	now := time.Now()
	payloads := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		payloads = append(payloads, postPayload(post, now))
	}

	c.JSON(http.StatusOK, gin.H{"posts": payloads})
}

// GetPost 获取单条历史记录。
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的帖子ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "帖子不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取帖子失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postPayload(*post, time.Now())})
}

// CreatePost 将生成结果保存到历史记录。
func (a *API) CreatePost(c *gin.Context) {
	var payload createPostRequest
	if !bindJSON(c, &payload, "请填写完整的帖子信息") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Topic:    payload.Topic,
		Tone:     payload.Tone,
		Length:   payload.Length,
		PostType: payload.PostType,
		Content:  payload.Content,
		Hashtags: payload.Hashtags,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "保存帖子失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "帖子已保存", "post": postPayload(*post, time.Now())})
}

// DeletePost 删除一条历史记录。
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的帖子ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "帖子不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除帖子失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "帖子已删除"})
}

// ToggleFavorite 切换帖子的收藏状态。
func (a *API) ToggleFavorite(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的帖子ID")
		return
	}

	post, err := a.posts.ToggleFavorite(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "帖子不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新收藏状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "收藏状态已更新", "post": postPayload(*post, time.Now())})
}

// PreviewPost 渲染帖子的 HTML 预览并返回文本统计。
func (a *API) PreviewPost(c *gin.Context) {
	var payload previewRequest
	if !bindJSON(c, &payload, "请填写帖子内容") {
		return
	}

	content := payload.Content
	if hashtags := strings.TrimSpace(payload.Hashtags); hashtags != "" {
		content = strings.TrimRight(content, "\n") + "\n\n" + textstat.FormatHashtags(hashtags)
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		respondError(c, http.StatusInternalServerError, "渲染预览失败")
		return
	}
	rendered := sanitizer.SanitizeBytes(buf.Bytes())

	c.JSON(http.StatusOK, gin.H{
		"html":       string(rendered),
		"statistics": textstat.Collect(content),
		"engagement": textstat.CollectEngagementFactors(content),
	})
}

// ExportPosts 将历史记录导出为纯文本附件。
func (a *API) ExportPosts(c *gin.Context) {
	filter := service.PostFilter{
		Tone:  c.Query("tone"),
		Limit: -1,
	}
	if fav := c.Query("favorites"); fav == "1" || strings.EqualFold(fav, "true") {
		filter.FavoritesOnly = true
	}

	posts, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出失败")
		return
	}

	content := renderPostsExport(posts)
	filename := fmt.Sprintf("%s-%s.txt", time.Now().Format("20060102"), uuid.New().String())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// renderPostsExport 以固定文本格式拼接导出内容。
func renderPostsExport(posts []db.Post) string {
	var sb strings.Builder
	sb.WriteString("LinkedIn Posts Export\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, post := range posts {
		fmt.Fprintf(&sb, "Post #%d\n", i+1)
		fmt.Fprintf(&sb, "Topic: %s\n", valueOrNA(post.Topic))
		fmt.Fprintf(&sb, "Tone: %s\n", valueOrNA(post.Tone))
		fmt.Fprintf(&sb, "Created: %s\n", post.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&sb, "\nContent:\n%s\n", post.Content)

		if strings.TrimSpace(post.Hashtags) != "" {
			fmt.Fprintf(&sb, "\nHashtags: %s\n", post.Hashtags)
		}

		sb.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	}

	return sb.String()
}

func valueOrNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}
