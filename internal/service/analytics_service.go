package service

import (
	"time"

	"github.com/postforge/internal/db"
	"gorm.io/gorm"
)

const defaultRecentWindowDays = 7

// AnalyticsService 负责汇总生成历史的使用统计。
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// UsageStatistics 汇总帖子与草稿的使用数据。
type UsageStatistics struct {
	TotalPosts     int64          `json:"totalPosts"`
	TotalDrafts    int64          `json:"totalDrafts"`
	FavoriteCount  int64          `json:"favoriteCount"`
	MostUsedTone   string         `json:"mostUsedTone"`
	MostUsedLength string         `json:"mostUsedLength"`
	PostsByTone    map[string]int `json:"postsByTone"`
	PostsByLength  map[string]int `json:"postsByLength"`
	RecentPosts    int64          `json:"recentPosts"`
}

type groupCount struct {
	Value string
	Count int
}

// Statistics 返回整体使用统计，最近活跃默认统计 7 天。
func (s *AnalyticsService) Statistics(now time.Time) (UsageStatistics, error) {
	stats := UsageStatistics{
		MostUsedTone:   "N/A",
		MostUsedLength: "N/A",
	}

	if err := s.db.Model(&db.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&db.Draft{}).Count(&stats.TotalDrafts).Error; err != nil {
		return stats, err
	}
	if err := s.db.Model(&db.Post{}).
		Where("is_favorite = ?", true).
		Count(&stats.FavoriteCount).Error; err != nil {
		return stats, err
	}

	byTone, err := s.groupCounts("tone")
	if err != nil {
		return stats, err
	}
	stats.PostsByTone = toCountMap(byTone)
	if len(byTone) > 0 {
		stats.MostUsedTone = byTone[0].Value
	}

	byLength, err := s.groupCounts("length")
	if err != nil {
		return stats, err
	}
	stats.PostsByLength = toCountMap(byLength)
	if len(byLength) > 0 {
		stats.MostUsedLength = byLength[0].Value
	}

	recent, err := s.CountSince(now, defaultRecentWindowDays)
	if err != nil {
		return stats, err
	}
	stats.RecentPosts = recent

	return stats, nil
}

// CountSince 统计最近 days 天内创建的帖子数量。
func (s *AnalyticsService) CountSince(now time.Time, days int) (int64, error) {
	if days <= 0 {
		days = defaultRecentWindowDays
	}
	cutoff := now.AddDate(0, 0, -days)

	var count int64
	if err := s.db.Model(&db.Post{}).
		Where("created_at >= ?", cutoff).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// groupCounts 按指定字段聚合帖子数量，降序排列。
func (s *AnalyticsService) groupCounts(column string) ([]groupCount, error) {
	var rows []groupCount
	if err := s.db.Model(&db.Post{}).
		Select(column+" AS value, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func toCountMap(rows []groupCount) map[string]int {
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Value] = row.Count
	}
	return result
}
