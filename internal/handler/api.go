package handler

import (
	"github.com/postforge/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	drafts    *service.DraftService
	analytics *service.AnalyticsService
	system    *service.SystemSettingService
	generator service.PostGenerator
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB) *API {
	systemService := service.NewSystemSettingService(db)

	return &API{
		db:        db,
		posts:     service.NewPostService(db),
		drafts:    service.NewDraftService(db),
		analytics: service.NewAnalyticsService(db),
		system:    systemService,
		generator: service.NewGeneratorService(systemService),
	}
}

// System exposes the settings service for startup seeding.
func (a *API) System() *service.SystemSettingService {
	return a.system
}

// SetGenerator 替换帖子生成实现，主要用于测试。
func (a *API) SetGenerator(generator service.PostGenerator) {
	if generator == nil {
		return
	}
	a.generator = generator
}
