// ABOUTME: Relative date labels for note timestamps.
// ABOUTME: Counts calendar days in the viewer's location, not elapsed hours.

package ui

import (
	"fmt"
	"time"
)

const absoluteDateLayout = "Jan 2, 2006"

// FormatDate labels t relative to now: "Today", "Yesterday", "N days ago" up to
// a week, then the calendar date. Timestamps after now count as today.
func FormatDate(t, now time.Time) string {
	days := CalendarDaysBetween(t, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.In(now.Location()).Format(absoluteDateLayout)
	}
}

// CalendarDaysBetween is the number of midnights crossed going from t to now,
// both seen in now's location.
func CalendarDaysBetween(t, now time.Time) int {
	t = t.In(now.Location())
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
