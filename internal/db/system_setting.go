package db

import "gorm.io/gorm"

// SystemSetting 存储后台可配置的系统级键值对。
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SystemSetting) TableName() string {
	return "system_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyAIProvider 表示当前使用的 AI 平台。
	SettingKeyAIProvider = "ai_provider"
	// SettingKeyGroqAPIKey 表示 Groq API Key。
	SettingKeyGroqAPIKey = "groq_api_key"
	// SettingKeyOpenAIAPIKey 表示 OpenAI API Key。
	SettingKeyOpenAIAPIKey = "openai_api_key"
	// SettingKeyGroqModel 表示 Groq 生成所使用的模型名称。
	SettingKeyGroqModel = "groq_model"
	// SettingKeyOpenAIModel 表示 OpenAI 生成所使用的模型名称。
	SettingKeyOpenAIModel = "openai_model"
	// SettingKeyDefaultTone 表示生成帖子时默认的语气。
	SettingKeyDefaultTone = "default_tone"
	// SettingKeyDefaultLength 表示生成帖子时默认的篇幅。
	SettingKeyDefaultLength = "default_length"
)
