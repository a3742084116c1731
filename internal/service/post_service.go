package service

import (
	"errors"
	"strings"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

// ErrPostNotFound 表示历史记录中不存在对应帖子。
var ErrPostNotFound = errors.New("post not found")

// PostService wraps post history database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing generated posts.
type PostFilter struct {
	Tone          string
	Length        string
	PostType      string
	FavoritesOnly bool
	Limit         int
	Offset        int
}

// PostInput represents fields accepted when recording a generated post.
type PostInput struct {
	Topic    string
	Tone     string
	Length   string
	PostType string
	Content  string
	Hashtags string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Create persists a generated post into history.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	postType := NormalizePostType(input.PostType)
	if postType == "" {
		postType = PostTypeGeneral
	}

	post := db.Post{
		Topic:    strings.TrimSpace(input.Topic),
		Tone:     strings.TrimSpace(input.Tone),
		Length:   strings.TrimSpace(input.Length),
		PostType: postType,
		Content:  input.Content,
		Hashtags: strings.TrimSpace(input.Hashtags),
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts ordered by created time descending, applying filters.
func (s *PostService) List(filter PostFilter) ([]db.Post, error) {
	query := s.db.Model(&db.Post{}).Order("created_at desc, id desc")

	if tone := NormalizeTone(filter.Tone); tone != "" {
		query = query.Where("tone = ?", tone)
	}
	if length := NormalizeLength(filter.Length); length != "" {
		query = query.Where("length = ?", length)
	}
	if postType := NormalizePostType(filter.PostType); postType != "" {
		query = query.Where("post_type = ?", postType)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}

	// Limit 为负表示不分页，0 使用默认页大小。
	switch {
	case filter.Limit > 0:
		query = query.Limit(filter.Limit)
	case filter.Limit == 0:
		query = query.Limit(50)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var posts []db.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Favorites returns all favorited posts, newest first.
func (s *PostService) Favorites() ([]db.Post, error) {
	return s.List(PostFilter{FavoritesOnly: true, Limit: -1})
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes a post by id.
func (s *PostService) Delete(id uint) error {
	result := s.db.Delete(&db.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// ToggleFavorite flips exactly the favorite flag and returns the updated post.
func (s *PostService) ToggleFavorite(id uint) (*db.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	// Update 会把新值写回 post 本身，无需再手动翻转。
	if err := s.db.Model(post).
		Update("is_favorite", !post.IsFavorite).Error; err != nil {
		return nil, err
	}
	return post, nil
}
