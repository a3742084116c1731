package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AIProviderGroq 表示使用 Groq 能力（OpenAI 兼容接口）。
	AIProviderGroq = "groq"
	// AIProviderOpenAI 表示使用 OpenAI 能力。
	AIProviderOpenAI = "openai"
)

var supportedAIProviders = []string{AIProviderGroq, AIProviderOpenAI}

// placeholderAPIKeys 是文档示例里常见的占位 Key，视同未配置。
var placeholderAPIKeys = []string{
	"your_groq_api_key_here",
	"your_openai_api_key_here",
	"your_api_key_here",
}

// ErrAIAPIKeyMissing 表示未提供必需的 AI 平台 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettings 描述可配置的系统信息。
type SystemSettings struct {
	SiteName      string
	AIProvider    string
	GroqAPIKey    string
	OpenAIAPIKey  string
	GroqModel     string
	OpenAIModel   string
	DefaultTone   string
	DefaultLength string
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	SiteName      string
	AIProvider    string
	GroqAPIKey    string
	OpenAIAPIKey  string
	GroqModel     string
	OpenAIModel   string
	DefaultTone   string
	DefaultLength string
}

// SystemSettingService 提供系统设置的读取与更新能力。
type SystemSettingService struct {
	db          *gorm.DB
	httpClient  httpDoer
	groqBaseURL string
	openAIBase  string
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{
		db:          gdb,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		groqBaseURL: "https://api.groq.com/openai/v1",
		openAIBase:  "https://api.openai.com/v1",
	}
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyAIProvider,
	db.SettingKeyGroqAPIKey,
	db.SettingKeyOpenAIAPIKey,
	db.SettingKeyGroqModel,
	db.SettingKeyOpenAIModel,
	db.SettingKeyDefaultTone,
	db.SettingKeyDefaultLength,
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := SystemSettings{
		SiteName:      "PostForge",
		AIProvider:    AIProviderGroq,
		DefaultTone:   ToneProfessional,
		DefaultLength: LengthMedium,
	}

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(record.Value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyGroqAPIKey:
			result.GroqAPIKey = record.Value
		case db.SettingKeyOpenAIAPIKey:
			result.OpenAIAPIKey = record.Value
		case db.SettingKeyGroqModel:
			result.GroqModel = record.Value
		case db.SettingKeyOpenAIModel:
			result.OpenAIModel = record.Value
		case db.SettingKeyDefaultTone:
			if tone := NormalizeTone(record.Value); tone != "" {
				result.DefaultTone = tone
			}
		case db.SettingKeyDefaultLength:
			if length := NormalizeLength(record.Value); length != "" {
				result.DefaultLength = length
			}
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，未填写站点名称时回退默认值。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = AIProviderGroq
	}

	tone := NormalizeTone(input.DefaultTone)
	if tone == "" {
		tone = ToneProfessional
	}
	length := NormalizeLength(input.DefaultLength)
	if length == "" {
		length = LengthMedium
	}

	sanitized := SystemSettings{
		SiteName:      strings.TrimSpace(input.SiteName),
		AIProvider:    provider,
		GroqAPIKey:    strings.TrimSpace(input.GroqAPIKey),
		OpenAIAPIKey:  strings.TrimSpace(input.OpenAIAPIKey),
		GroqModel:     strings.TrimSpace(input.GroqModel),
		OpenAIModel:   strings.TrimSpace(input.OpenAIModel),
		DefaultTone:   tone,
		DefaultLength: length,
	}

	if sanitized.SiteName == "" {
		sanitized.SiteName = "PostForge"
	}

	pairs := map[string]string{
		db.SettingKeySiteName:      sanitized.SiteName,
		db.SettingKeyAIProvider:    sanitized.AIProvider,
		db.SettingKeyGroqAPIKey:    sanitized.GroqAPIKey,
		db.SettingKeyOpenAIAPIKey:  sanitized.OpenAIAPIKey,
		db.SettingKeyGroqModel:     sanitized.GroqModel,
		db.SettingKeyOpenAIModel:   sanitized.OpenAIModel,
		db.SettingKeyDefaultTone:   sanitized.DefaultTone,
		db.SettingKeyDefaultLength: sanitized.DefaultLength,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, pairs[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return sanitized, nil
}

// Get 读取单个设置项，不存在时返回 fallback。
func (s *SystemSettingService) Get(key, fallback string) (string, error) {
	var record db.SystemSetting
	if err := s.db.Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load setting %s: %w", key, err)
	}
	return record.Value, nil
}

// Set 写入单个设置项，存在时覆盖。
func (s *SystemSettingService) Set(key, value string) error {
	return upsertSetting(s.db, key, value)
}

// SeedFromEnv 在启动时用环境变量补齐尚未配置的凭据，不覆盖已有值。
func (s *SystemSettingService) SeedFromEnv(provider, groqKey, openAIKey string) error {
	seeds := map[string]string{
		db.SettingKeyAIProvider:   normalizeAIProvider(provider),
		db.SettingKeyGroqAPIKey:   sanitizeAPIKey(groqKey),
		db.SettingKeyOpenAIAPIKey: sanitizeAPIKey(openAIKey),
	}

	for key, value := range seeds {
		if value == "" {
			continue
		}
		existing, err := s.Get(key, "")
		if err != nil {
			return err
		}
		if strings.TrimSpace(existing) != "" {
			continue
		}
		if err := s.Set(key, value); err != nil {
			return err
		}
	}

	return nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

// SetHTTPClient 替换用于访问第三方服务的 HTTP 客户端，主要面向测试场景。
func (s *SystemSettingService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.httpClient = &http.Client{Timeout: 10 * time.Second}
		return
	}
	s.httpClient = client
}

// SetGroqBaseURL 覆盖 Groq API 的基础地址，便于测试或自定义代理。
func (s *SystemSettingService) SetGroqBaseURL(base string) {
	s.groqBaseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// SetOpenAIBaseURL 覆盖 OpenAI API 的基础地址，便于测试或自定义代理。
func (s *SystemSettingService) SetOpenAIBaseURL(base string) {
	s.openAIBase = strings.TrimRight(strings.TrimSpace(base), "/")
}

// TestAIConnection 调用指定 AI 平台的模型接口验证 API Key 的有效性。
func (s *SystemSettingService) TestAIConnection(ctx context.Context, provider, apiKey string) error {
	key := sanitizeAPIKey(apiKey)
	if key == "" {
		return ErrAIAPIKeyMissing
	}

	prov := normalizeAIProvider(provider)
	if prov == "" {
		prov = AIProviderGroq
	}

	client := s.httpClient
	if client == nil {
		client = http.DefaultClient
	}

	base := ""
	label := ""
	switch prov {
	case AIProviderOpenAI:
		base = s.openAIBase
		if strings.TrimSpace(base) == "" {
			base = "https://api.openai.com/v1"
		}
		label = "OpenAI"
	default:
		base = s.groqBaseURL
		if strings.TrimSpace(base) == "" {
			base = "https://api.groq.com/openai/v1"
		}
		label = "Groq"
	}

	endpoint := strings.TrimRight(base, "/") + "/models"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", strings.ToLower(label), err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("User-Agent", "postforge-admin/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("请求 %s 接口失败: %w", label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		msg := strings.TrimSpace(string(body))
		if msg != "" {
			return fmt.Errorf("%s 返回错误：%s (%s)", label, resp.Status, msg)
		}
		return fmt.Errorf("%s 返回错误：%s", label, resp.Status)
	}

	return nil
}

func normalizeAIProvider(provider string) string {
	trimmed := strings.ToLower(strings.TrimSpace(provider))
	for _, candidate := range supportedAIProviders {
		if trimmed == candidate {
			return candidate
		}
	}
	return ""
}

// sanitizeAPIKey 去除空白并剔除文档占位值。
func sanitizeAPIKey(key string) string {
	trimmed := strings.TrimSpace(key)
	lower := strings.ToLower(trimmed)
	for _, placeholder := range placeholderAPIKeys {
		if lower == placeholder {
			return ""
		}
	}
	return trimmed
}
