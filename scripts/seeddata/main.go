package main

import (
	"fmt"
	"log"

	"github.com/postforge/internal/config"
	"github.com/postforge/internal/db"
	"github.com/postforge/internal/service"
)

// 本地开发用的示例数据生成器。
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成示例数据...")

	seedPosts()
	seedDrafts()

	fmt.Println("示例数据生成完毕")
}

func seedPosts() {
	posts := service.NewPostService(db.DB)

	samples := []service.PostInput{
		{
			Topic:    "remote team onboarding",
			Tone:     service.ToneCasual,
			Length:   service.LengthMedium,
			Content:  "Onboarding a remote teammate this week reminded me how much the first day matters.\n\nA checklist beats a welcome call every time.\n\nWhat's the one thing you wish someone had told you on day one?",
			Hashtags: "#RemoteWork #Onboarding #TeamCulture",
		},
		{
			Topic:    "lessons from a failed launch",
			Tone:     service.ToneStorytelling,
			Length:   service.LengthLong,
			PostType: service.PostTypeIndustryInsight,
			Content:  "Two years ago we shipped a feature nobody used.\n\nThe post-mortem taught us more than the launch ever could.\n\nTalk to ten users before you write a line of code.",
			Hashtags: "#ProductManagement #Startups #Lessons",
		},
		{
			Topic:    "sqlite in production",
			Tone:     service.ToneEducational,
			Length:   service.LengthShort,
			PostType: service.PostTypeTips,
			Content:  "Three reasons SQLite is underrated for small services:\n1. Zero ops\n2. Single-file backups\n3. Surprisingly fast reads",
			Hashtags: "#SQLite #Backend #Engineering",
		},
	}

	for _, input := range samples {
		if _, err := posts.Create(input); err != nil {
			log.Fatal("创建示例帖子失败:", err)
		}
	}
	fmt.Printf("已创建 %d 条示例帖子\n", len(samples))
}

func seedDrafts() {
	drafts := service.NewDraftService(db.DB)

	samples := []service.DraftInput{
		{
			Title:    "Conference recap",
			Content:  "Rough notes from the platform engineering track...",
			Hashtags: "#PlatformEngineering",
			Notes:    "polish intro before posting",
		},
		{
			Title: "Hiring announcement",
			Notes: "wait for offer acceptance",
		},
	}

	for _, input := range samples {
		if _, err := drafts.Create(input); err != nil {
			log.Fatal("创建示例草稿失败:", err)
		}
	}
	fmt.Printf("已创建 %d 条示例草稿\n", len(samples))
}
