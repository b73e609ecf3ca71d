package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDateValue(t *testing.T) {
	t.Parallel()

	valid := []string{
		"2025-01-06T09:00:00Z",
		"2025-01-06T09:00:00+07:00",
		"2025-01-06T09:00:00",
		"2025-01-06 09:00:00",
		"2025-01-06",
		"09:30:00",
		"09:30",
	}
	for _, v := range valid {
		_, ok := parseDateValue(v)
		assert.True(t, ok, "parseDateValue(%q) should parse", v)
	}

	invalid := []string{"", "  ", "not a date", "25:99", "2025-13-40"}
	for _, v := range invalid {
		_, ok := parseDateValue(v)
		assert.False(t, ok, "parseDateValue(%q) should fail", v)
	}
}

func TestDurationMs(t *testing.T) {
	t.Parallel()

	ms, ok := durationMs("2025-01-06T09:00:00Z", "2025-01-06T17:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, int64(8*3600000+30*60000), ms)

	// Bare time-of-day values subtract against the shared anchor.
	ms, ok = durationMs("09:00:00", "09:45:00")
	assert.True(t, ok)
	assert.Equal(t, int64(45*60000), ms)

	// Reversed and zero-length pairs yield no duration.
	_, ok = durationMs("2025-01-06T17:00:00Z", "2025-01-06T09:00:00Z")
	assert.False(t, ok)
	_, ok = durationMs("09:00:00", "09:00:00")
	assert.False(t, ok)

	// Either side failing to parse yields no duration.
	_, ok = durationMs("garbage", "2025-01-06T09:00:00Z")
	assert.False(t, ok)
	_, ok = durationMs("2025-01-06T09:00:00Z", "")
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ms   int64
		want string
	}{
		{0, ""},
		{-5000, ""},
		{30000, "Less than 1m"}, // sub-minute
		{60000, "1m"},
		{36 * 60000, "36m"},
		{2 * 3600000, "2h"},
		{2*3600000 + 36*60000, "2h 36m"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatDuration(c.ms), "formatDuration(%d)", c.ms)
	}
}

// Duration monotonicity: every valid forward pair formats to a non-empty label.
func TestDurationMonotonicity(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"2025-01-06T09:00:00Z", "2025-01-06T09:00:01Z"},
		{"2025-01-06T09:00:00Z", "2025-01-06T09:59:00Z"},
		{"2025-01-06T09:00:00Z", "2025-01-07T09:00:00Z"},
		{"08:00", "16:45"},
	}
	for _, p := range pairs {
		ms, ok := durationMs(p[0], p[1])
		assert.True(t, ok, "durationMs(%q, %q)", p[0], p[1])
		assert.NotEmpty(t, formatDuration(ms))
	}
}

func TestParseClockDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		clock string
		want  int64
		ok    bool
	}{
		{"01:30:00", 90 * 60000, true},
		{"00:45:30", 45*60000 + 30000, true},
		{"02:15", 2*3600000 + 15*60000, true}, // missing seconds default to 0
		{"3", 3 * 3600000, true},              // missing minutes and seconds
		{"00:00:00", 0, true},
		{"", 0, false},
		{"1:xx:00", 0, false},
		{"one:30:00", 0, false},
		{"01:30:00:00", 0, false},
	}
	for _, c := range cases {
		got, ok := parseClockDuration(c.clock)
		assert.Equal(t, c.ok, ok, "parseClockDuration(%q) ok", c.clock)
		assert.Equal(t, c.want, got, "parseClockDuration(%q)", c.clock)
	}
}

func TestFormatDecimalHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0m"},
		{0.5, "30m"},
		{1, "1h"},
		{1.75, "1h 45m"},
		{2.008, "2h"}, // rounds to whole hours
		{-1, "0m"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatDecimalHours(c.hours), "formatDecimalHours(%v)", c.hours)
	}
}
