package main

import (
	"log"

	"github.com/postforge/internal/config"
	"github.com/postforge/internal/db"
	"github.com/postforge/internal/handler"
	"github.com/postforge/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 确保管理员账号存在
	if err := db.EnsureOperator(cfg.OperatorUserName, cfg.OperatorPassword); err != nil {
		log.Fatalf("failed to ensure operator account: %v", err)
	}

	api := handler.NewAPI(db.DB)

	// 用环境变量补齐尚未配置的 AI 凭据
	if err := api.System().SeedFromEnv(cfg.AIProvider, cfg.GroqAPIKey, cfg.OpenAIAPIKey); err != nil {
		log.Fatalf("failed to seed ai settings: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
