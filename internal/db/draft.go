package db

import "gorm.io/gorm"

// Draft 定义了手动保存的草稿模型
type Draft struct {
	gorm.Model
	Title    string `gorm:"not null"`
	Content  string `gorm:"type:text;not null"`
	Hashtags string `gorm:"type:text"`
	Notes    string `gorm:"type:text"`
}
