// utils/timeago.go
package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders t as a coarse relative label against now:
// under a minute "just now", then minutes, hours and days.
// A nil timestamp renders as "unknown".
func TimeAgo(t *time.Time, now time.Time) string {
	if t == nil {
		return "unknown"
	}

	mins := int(now.Sub(*t).Minutes())
	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%d minutes ago", mins)
	case mins < 1440:
		return fmt.Sprintf("%d hours ago", mins/60)
	default:
		return fmt.Sprintf("%d days ago", mins/1440)
	}
}
