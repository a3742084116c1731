package service

import (
	"errors"
	"strings"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

// ErrDraftNotFound 表示草稿不存在。
var ErrDraftNotFound = errors.New("draft not found")

// ErrDraftTitleRequired 表示草稿缺少标题。
var ErrDraftTitleRequired = errors.New("draft title is required")

// DraftService wraps draft database operations.
type DraftService struct {
	db *gorm.DB
}

// DraftInput represents fields accepted when creating a draft.
type DraftInput struct {
	Title    string
	Content  string
	Hashtags string
	Notes    string
}

// DraftUpdate 描述草稿的部分更新，nil 字段保持原值。
type DraftUpdate struct {
	Title    *string
	Content  *string
	Hashtags *string
	Notes    *string
}

// NewDraftService creates a DraftService instance.
func NewDraftService(gdb *gorm.DB) *DraftService {
	return &DraftService{db: gdb}
}

// Create persists a new draft.
func (s *DraftService) Create(input DraftInput) (*db.Draft, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrDraftTitleRequired
	}

	draft := db.Draft{
		Title:    title,
		Content:  input.Content,
		Hashtags: strings.TrimSpace(input.Hashtags),
		Notes:    input.Notes,
	}

	if err := s.db.Create(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// List returns all drafts ordered by last update descending.
func (s *DraftService) List() ([]db.Draft, error) {
	var drafts []db.Draft
	if err := s.db.Order("updated_at desc, id desc").Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// Get fetches a draft by id.
func (s *DraftService) Get(id uint) (*db.Draft, error) {
	var draft db.Draft
	if err := s.db.First(&draft, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// Update applies a partial update; only provided fields change.
func (s *DraftService) Update(id uint, update DraftUpdate) (*db.Draft, error) {
	draft, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, ErrDraftTitleRequired
		}
		changes["title"] = title
	}
	if update.Content != nil {
		changes["content"] = *update.Content
	}
	if update.Hashtags != nil {
		changes["hashtags"] = strings.TrimSpace(*update.Hashtags)
	}
	if update.Notes != nil {
		changes["notes"] = *update.Notes
	}

	if len(changes) == 0 {
		return draft, nil
	}

	if err := s.db.Model(draft).Updates(changes).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

// Delete removes a draft by id.
func (s *DraftService) Delete(id uint) error {
	result := s.db.Delete(&db.Draft{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}
