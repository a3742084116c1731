package db

import (
	"strings"

	"gorm.io/gorm"
)

// Post 定义了生成历史中的帖子模型
type Post struct {
	gorm.Model
	Topic      string `gorm:"not null"`
	Tone       string `gorm:"size:32;not null;index"`
	Length     string `gorm:"size:16;not null;index"`
	PostType   string `gorm:"size:32;not null;default:general;index"`
	Content    string `gorm:"type:text;not null"`
	Hashtags   string `gorm:"type:text"`
	IsFavorite bool   `gorm:"default:false;index"`
}

// HashtagList 将存储的话题标签字符串拆分为独立标签。
// 兼容空格与逗号两种分隔方式，返回值保留 # 前缀。
func (p Post) HashtagList() []string {
	raw := strings.ReplaceAll(p.Hashtags, ",", " ")
	fields := strings.Fields(raw)
	tags := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.HasPrefix(field, "#") && len(field) > 1 {
			tags = append(tags, field)
		}
	}
	return tags
}
