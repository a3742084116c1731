package textstat

import (
	"fmt"
	"time"
)

// RelativeTime 以英文口语化的形式描述 t 相对 now 的时间差，
// 按分钟、小时、天、周分桶，未来时间一律视为 "just now"。
func RelativeTime(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return pluralize(int(seconds/60), "minute")
	case seconds < 86400:
		return pluralize(int(seconds/3600), "hour")
	case seconds < 604800:
		return pluralize(int(seconds/86400), "day")
	default:
		return pluralize(int(seconds/604800), "week")
	}
}

func pluralize(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", count, unit)
}
