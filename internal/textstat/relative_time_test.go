package textstat

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "59 seconds is just now", ago: 59 * time.Second, want: "just now"},
		{name: "60 seconds is one minute", ago: 60 * time.Second, want: "1 minute ago"},
		{name: "plural minutes", ago: 5 * time.Minute, want: "5 minutes ago"},
		{name: "one hour boundary", ago: time.Hour, want: "1 hour ago"},
		{name: "plural hours", ago: 7 * time.Hour, want: "7 hours ago"},
		{name: "one day", ago: 24 * time.Hour, want: "1 day ago"},
		{name: "plural days", ago: 3 * 24 * time.Hour, want: "3 days ago"},
		{name: "one week", ago: 7 * 24 * time.Hour, want: "1 week ago"},
		{name: "plural weeks", ago: 21 * 24 * time.Hour, want: "3 weeks ago"},
		{name: "future timestamps read as just now", ago: -time.Hour, want: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
