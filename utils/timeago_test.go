package utils

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name string
		t    *time.Time
		want string
	}{
		{name: "nil timestamp", t: nil, want: "unknown"},
		{name: "30 seconds", t: ago(30 * time.Second), want: "just now"},
		{name: "59 seconds", t: ago(59 * time.Second), want: "just now"},
		{name: "1 minute", t: ago(time.Minute), want: "1 minutes ago"},
		{name: "5 minutes", t: ago(5 * time.Minute), want: "5 minutes ago"},
		{name: "59 minutes", t: ago(59 * time.Minute), want: "59 minutes ago"},
		{name: "1 hour", t: ago(time.Hour), want: "1 hours ago"},
		{name: "3 hours", t: ago(3 * time.Hour), want: "3 hours ago"},
		{name: "23 hours 59 minutes", t: ago(24*time.Hour - time.Minute), want: "23 hours ago"},
		{name: "1 day", t: ago(24 * time.Hour), want: "1 days ago"},
		{name: "2 days", t: ago(48 * time.Hour), want: "2 days ago"},
		{name: "40 days", t: ago(40 * 24 * time.Hour), want: "40 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.t, now); got != tt.want {
				t.Errorf("TimeAgo() = %q, want %q", got, tt.want)
			}
		})
	}
}
