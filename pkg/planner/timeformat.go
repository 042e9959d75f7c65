package planner

import (
	"fmt"
	"strings"
	"time"
)

// FormatClock renders an epoch-millisecond instant as a wall clock string in
// the given zone. English locales get the 12-hour form, everyone else 24-hour.
func FormatClock(epochMS int64, locale string, location *time.Location) string {
	instant := time.UnixMilli(epochMS).In(location)

	if strings.HasPrefix(locale, "en") {
		return instant.Format("3:04 PM")
	}

	return instant.Format("15:04")
}

// FormatDuration renders a minute count for display, eg "45 min" or "1 h 05 min".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	return fmt.Sprintf("%d h %02d min", minutes/60, minutes%60)
}
