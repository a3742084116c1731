package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalytics 返回帖子与草稿的使用统计。
func (a *API) GetAnalytics(c *gin.Context) {
	stats, err := a.analytics.Statistics(time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取使用统计失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

// GetRecentActivity 返回最近 N 天的生成数量，默认 7 天。
func (a *API) GetRecentActivity(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的天数参数")
			return
		}
		days = parsed
	}

	count, err := a.analytics.CountSince(time.Now(), days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取使用统计失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recentPosts": count})
}
