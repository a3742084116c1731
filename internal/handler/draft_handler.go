package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/postforge/internal/db"
	"github.com/postforge/internal/service"
	"github.com/postforge/internal/textstat"
	"github.com/gin-gonic/gin"
)

type createDraftRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Hashtags string `json:"hashtags"`
	Notes    string `json:"notes"`
}

type updateDraftRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Hashtags *string `json:"hashtags"`
	Notes    *string `json:"notes"`
}

func draftPayload(draft db.Draft, now time.Time) gin.H {
	return gin.H{
		"id":         draft.ID,
		"title":      draft.Title,
		"content":    draft.Content,
		"hashtags":   draft.Hashtags,
		"notes":      draft.Notes,
		"updatedAt":  draft.UpdatedAt,
		"updatedAgo": textstat.RelativeTime(draft.UpdatedAt, now),
	}
}

// GetDrafts 获取草稿列表，按更新时间倒序。
func (a *API) GetDrafts(c *gin.Context) {
	drafts, err := a.drafts.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取草稿列表失败")
		return
	}

	now := time.Now()
	payloads := make([]gin.H, 0, len(drafts))
	for _, draft := range drafts {
		payloads = append(payloads, draftPayload(draft, now))
	}

	c.JSON(http.StatusOK, gin.H{"drafts": payloads})
}

// GetDraft 获取单条草稿。
func (a *API) GetDraft(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的草稿ID")
		return
	}

	draft, err := a.drafts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "草稿不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取草稿失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draftPayload(*draft, time.Now())})
}

// CreateDraft 保存新草稿。
func (a *API) CreateDraft(c *gin.Context) {
	var payload createDraftRequest
	if !bindJSON(c, &payload, "请填写完整的草稿信息") {
		return
	}

	draft, err := a.drafts.Create(service.DraftInput{
		Title:    payload.Title,
		Content:  payload.Content,
		Hashtags: payload.Hashtags,
		Notes:    payload.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrDraftTitleRequired) {
			respondError(c, http.StatusBadRequest, "请填写草稿标题")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存草稿失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "草稿已保存", "draft": draftPayload(*draft, time.Now())})
}

// UpdateDraft 部分更新草稿，未提交的字段保持不变。
func (a *API) UpdateDraft(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的草稿ID")
		return
	}

	var payload updateDraftRequest
	if !bindJSON(c, &payload, "请填写有效的草稿信息") {
		return
	}

	draft, err := a.drafts.Update(id, service.DraftUpdate{
		Title:    payload.Title,
		Content:  payload.Content,
		Hashtags: payload.Hashtags,
		Notes:    payload.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDraftNotFound):
			respondError(c, http.StatusNotFound, "草稿不存在")
		case errors.Is(err, service.ErrDraftTitleRequired):
			respondError(c, http.StatusBadRequest, "请填写草稿标题")
		default:
			respondError(c, http.StatusInternalServerError, "更新草稿失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "草稿已更新", "draft": draftPayload(*draft, time.Now())})
}

// DeleteDraft 删除草稿。
func (a *API) DeleteDraft(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的草稿ID")
		return
	}

	if err := a.drafts.Delete(id); err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			respondError(c, http.StatusNotFound, "草稿不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除草稿失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "草稿已删除"})
}
