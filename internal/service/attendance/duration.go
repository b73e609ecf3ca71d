package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	msPerHour   int64 = 3600000
	msPerMinute int64 = 60000
	msPerSecond int64 = 1000
)

// Timestamps in the raw log arrive in more than one shape: full RFC3339,
// the portal's space-separated datetime, a bare date, or a bare time of day.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
}

// parseDateValue parses an absolute timestamp, retrying the value as a bare
// time of day anchored to a fixed date so two time-only values still
// subtract cleanly. Returns false when nothing matches.
func parseDateValue(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	// time.Parse anchors bare clock values to the zero date, which is a
	// stable anchor shared by every time-only input.
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// durationMs computes end - start in milliseconds. A pair that fails to
// parse, or a non-positive span (malformed or reversed), yields no duration.
func durationMs(start, end string) (int64, bool) {
	s, ok := parseDateValue(start)
	if !ok {
		return 0, false
	}
	e, ok := parseDateValue(end)
	if !ok {
		return 0, false
	}

	ms := e.Sub(s).Milliseconds()
	if ms <= 0 {
		return 0, false
	}
	return ms, true
}

// formatDuration renders a positive millisecond span as "2h 36m", eliding
// zero components. Sub-minute spans render as "Less than 1m"; non-positive
// spans render as empty.
func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}

	hours := ms / msPerHour
	minutes := (ms % msPerHour) / msPerMinute

	switch {
	case hours == 0 && minutes == 0:
		return "Less than 1m"
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// parseClockDuration converts an elapsed "HH:MM:SS" clock string to
// milliseconds. Missing trailing segments default to zero; any non-numeric
// segment rejects the whole value.
func parseClockDuration(clock string) (int64, bool) {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return 0, false
	}

	parts := strings.Split(clock, ":")
	if len(parts) > 3 {
		return 0, false
	}

	var segments [3]int64
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n < 0 {
			return 0, false
		}
		segments[i] = n
	}

	return segments[0]*msPerHour + segments[1]*msPerMinute + segments[2]*msPerSecond, true
}

// formatDecimalHours renders a fractional hour count ("1.75") as "1h 45m",
// with the same zero-elision as formatDuration except that zero renders "0m".
func formatDecimalHours(hours float64) string {
	totalMinutes := int64(math.Round(hours * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	h := totalMinutes / 60
	m := totalMinutes % 60

	switch {
	case h == 0 && m == 0:
		return "0m"
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
