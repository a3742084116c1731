package router

import (
	"github.com/postforge/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件。服务默认跑在纯 HTTP 上，必须显式关闭 Secure，
	// 否则浏览器不会回传会话 Cookie。
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false,
	})
	r.Use(sessions.Sessions("postforge_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/healthz", api.HealthCheck)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.GET("/logout", handler.Logout)

		// 需要认证的API路由
		apiGroup := admin.Group("/api")
		apiGroup.Use(handler.AuthRequired())
		{
			apiGroup.POST("/generate", api.GeneratePost)
			apiGroup.POST("/generate/hashtags", api.GenerateHashtags)
			apiGroup.POST("/generate/hooks", api.GenerateHooks)
			apiGroup.POST("/generate/variations", api.GenerateVariations)
			apiGroup.POST("/generate/ctas", api.GenerateCTAs)
			apiGroup.POST("/posts/refine", api.RefinePost)
			apiGroup.POST("/posts/engagement", api.PredictEngagement)
			apiGroup.POST("/posts/emojis", api.AddEmojis)
			apiGroup.POST("/posts/preview", api.PreviewPost)
			apiGroup.GET("/posts/export", api.ExportPosts)

			apiGroup.GET("/posts", api.GetPosts)
			apiGroup.GET("/posts/:id", api.GetPost)
			apiGroup.POST("/posts", api.CreatePost)
			apiGroup.DELETE("/posts/:id", api.DeletePost)
			apiGroup.POST("/posts/:id/favorite", api.ToggleFavorite)

			apiGroup.GET("/drafts", api.GetDrafts)
			apiGroup.GET("/drafts/:id", api.GetDraft)
			apiGroup.POST("/drafts", api.CreateDraft)
			apiGroup.PUT("/drafts/:id", api.UpdateDraft)
			apiGroup.DELETE("/drafts/:id", api.DeleteDraft)

			apiGroup.GET("/settings", api.GetSystemSettings)
			apiGroup.PUT("/settings", api.UpdateSystemSettings)
			apiGroup.POST("/settings/test-ai", api.TestAIConnection)

			apiGroup.GET("/analytics", api.GetAnalytics)
			apiGroup.GET("/analytics/recent", api.GetRecentActivity)
		}
	}

	return r
}
