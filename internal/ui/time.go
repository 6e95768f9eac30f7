package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/kanban/internal/age"
	"github.com/amonks/kanban/issue"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	age := FormatTimeAgeShort(then, now)
	if age == "-" {
		return age
	}
	return age + " ago"
}

// FormatTimeAgeShort returns a compact age string like "2m".
func FormatTimeAgeShort(then time.Time, now time.Time) string {
	duration, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	seconds := int64(max(duration, 0).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}

// FormatDue describes a due date relative to today, e.g. "due in 3d" or
// "overdue 2d".
func FormatDue(due issue.Date, today issue.Date) string {
	days := today.DaysUntil(due)
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 1 && days < 7:
		return fmt.Sprintf("due in %dd", days)
	case days >= 7:
		return "due " + due.String()
	default:
		return fmt.Sprintf("overdue %dd", -days)
	}
}
