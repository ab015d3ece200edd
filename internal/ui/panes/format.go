package panes

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	listDateFormat   = "Jan 02"
	listTimeFormat   = "15:04"
	editorTimeFormat = "02/01/06 15:04"
	infoDateFormat   = "Jan 02"
)

// formatDuration renders a duration as "01D 02H 30M", dropping leading zero
// units ("02H 30M", "30M").
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	switch {
	case days > 0:
		return fmt.Sprintf("%02dD %02dH %02dM", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%02dH %02dM", hours, minutes)
	default:
		return fmt.Sprintf("%02dM", minutes)
	}
}

func formatPrice(price int) string {
	return fmt.Sprintf("€ %d", price)
}

// formatDateRange renders "Mar 18 - 21" within a month and "Mar 30 - Apr 02"
// across months.
func formatDateRange(start, end time.Time) string {
	if start.Year() == end.Year() && start.Month() == end.Month() {
		if start.Day() == end.Day() {
			return start.Format(infoDateFormat)
		}
		return fmt.Sprintf("%s - %02d", start.Format(infoDateFormat), end.Day())
	}
	return fmt.Sprintf("%s - %s", start.Format(infoDateFormat), end.Format(infoDateFormat))
}

// fitLeft truncates or pads s to exactly w cells.
func fitLeft(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		return runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

// fitRight truncates s to w cells or pads it on the left.
func fitRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		return runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillLeft(s, w)
}

func joinNonEmpty(sep string, parts ...string) string {
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			result = append(result, part)
		}
	}
	return strings.Join(result, sep)
}
