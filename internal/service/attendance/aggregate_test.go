package attendance

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trainhub/trainhub-backend-go/internal/domain/attendance"
)

func strPtr(s string) *string {
	return &s
}

// testNow is a Wednesday; the surrounding week runs 2025-01-12 to 2025-01-18.
var testNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func buildTestOverview(payload attendance.LogPayload, week string) attendance.Overview {
	return BuildOverview(payload, DefaultConfig(), Options{Now: testNow, Week: week})
}

func TestBuildOverview_EmptyInput(t *testing.T) {
	t.Parallel()

	overview := buildTestOverview(attendance.LogPayload{}, "")

	assert.Empty(t, overview.Days)
	assert.Empty(t, overview.BreakEntries)
	assert.Empty(t, overview.FlaggedDays)
	assert.Empty(t, overview.WeekOptions)
	assert.Equal(t, attendance.AggregateStats{}, overview.Stats)
	assert.Equal(t, attendance.WeekAll, overview.ActiveWeek)

	// The JSON boundary must see empty arrays, not nulls.
	assert.NotNil(t, overview.Days)
	assert.NotNil(t, overview.BreakEntries)
	assert.NotNil(t, overview.FlaggedDays)
	assert.NotNil(t, overview.WeekOptions)
}

// A single completed session marks the whole day present even when another
// session that day was missed.
func TestBuildOverview_StatusPrecedence(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{
						Date:     "2025-01-13",
						CheckIn:  strPtr("2025-01-13T09:00:00Z"),
						CheckOut: strPtr("2025-01-13T17:00:00Z"),
					},
				},
			},
			{
				EventID:    2,
				EventTitle: "System Design",
				AbsentDays: []attendance.AbsentDay{{Date: "2025-01-13"}},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	require.Len(t, overview.Days, 1)
	day := overview.Days[0]
	assert.Equal(t, "2025-01-13", day.Date)
	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.Len(t, day.Events, 2)
	require.NotNil(t, day.Events[0].Duration)
	assert.Equal(t, "8h", *day.Events[0].Duration)
}

func TestBuildOverview_PartialAndAbsentDays(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{Date: "2025-01-13", CheckIn: strPtr("2025-01-13T09:00:00Z")},
					// Unparseable check-in counts the same as no check-in.
					{Date: "2025-01-14", CheckIn: strPtr("not a timestamp")},
				},
				AbsentDays: []attendance.AbsentDay{{Date: "2025-01-15"}},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	require.Len(t, overview.Days, 3)
	assert.Equal(t, attendance.DayStatusPartial, overview.Days[0].Status)
	assert.Equal(t, attendance.DayStatusAbsent, overview.Days[1].Status)
	assert.Equal(t, attendance.DayStatusAbsent, overview.Days[2].Status)

	// Days sort ascending by date.
	assert.Equal(t, "2025-01-13", overview.Days[0].Date)
	assert.Equal(t, "2025-01-15", overview.Days[2].Date)
}

// The backend's pre-aggregated break total wins over the summed intervals
// whenever it is non-zero.
func TestBuildOverview_BreakTotalPrecedence(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{
						Date:             "2025-01-13",
						CheckIn:          strPtr("2025-01-13T09:00:00Z"),
						CheckOut:         strPtr("2025-01-13T17:00:00Z"),
						BreakAccumulated: strPtr("01:00:00"),
						BreakIntervals: []attendance.BreakInterval{
							{Start: "2025-01-13T12:00:00Z", End: strPtr("2025-01-13T12:15:00Z")},
							{Start: "2025-01-13T15:00:00Z", End: strPtr("2025-01-13T15:15:00Z")},
						},
					},
				},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	require.Len(t, overview.BreakEntries, 1)
	entry := overview.BreakEntries[0]
	assert.Equal(t, int64(3600000), entry.TotalDurationMs)
	assert.Equal(t, "1h", entry.TotalDuration)

	// The intervals still carry their own computed durations.
	require.Len(t, entry.Intervals, 2)
	require.NotNil(t, entry.Intervals[0].DurationMs)
	assert.Equal(t, int64(15*60000), *entry.Intervals[0].DurationMs)
}

func TestBuildOverview_BreakTotalFallsBackToSummedIntervals(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{
						Date:             "2025-01-13",
						CheckIn:          strPtr("2025-01-13T09:00:00Z"),
						BreakAccumulated: strPtr("00:00:00"),
						BreakIntervals: []attendance.BreakInterval{
							{Start: "2025-01-13T12:00:00Z", End: strPtr("2025-01-13T12:30:00Z")},
						},
					},
				},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	require.Len(t, overview.BreakEntries, 1)
	assert.Equal(t, int64(30*60000), overview.BreakEntries[0].TotalDurationMs)
}

func TestBuildOverview_OngoingBreakInterval(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{
						Date:    "2025-01-13",
						CheckIn: strPtr("2025-01-13T09:00:00Z"),
						BreakIntervals: []attendance.BreakInterval{
							{Start: "2025-01-13T12:00:00Z", End: nil},
						},
					},
				},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	require.Len(t, overview.BreakEntries, 1)
	entry := overview.BreakEntries[0]
	require.Len(t, entry.Intervals, 1)
	assert.Equal(t, "Ongoing", entry.Intervals[0].Duration)
	assert.Nil(t, entry.Intervals[0].DurationMs)
	assert.Equal(t, int64(0), entry.TotalDurationMs)
}

func TestBuildOverview_DayWithoutBreaksProducesNoEntry(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AttendedDays: []attendance.AttendedDay{
					{
						Date:     "2025-01-13",
						CheckIn:  strPtr("2025-01-13T09:00:00Z"),
						CheckOut: strPtr("2025-01-13T17:00:00Z"),
					},
				},
			},
		},
	}

	overview := buildTestOverview(payload, "")
	assert.Empty(t, overview.BreakEntries)
}

// Ten break days collapse to the six most recent, newest first; the rolling
// window total still scans the full set before the cap.
func TestBuildOverview_BreakRetentionCapAndRollup(t *testing.T) {
	t.Parallel()

	var attended []attendance.AttendedDay
	for i := 1; i <= 10; i++ {
		attended = append(attended, attendance.AttendedDay{
			Date:             fmt.Sprintf("2025-01-%02d", i),
			CheckIn:          strPtr(fmt.Sprintf("2025-01-%02dT09:00:00Z", i)),
			BreakAccumulated: strPtr("00:30:00"),
		})
	}
	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{EventID: 1, EventTitle: "Go Fundamentals", AttendedDays: attended},
		},
	}

	// now = Jan 8 midnight: the 7-day window reaches back to Jan 1, so
	// eight of the ten days land in the window while the display cap only
	// keeps Jan 5 through Jan 10.
	now := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)
	overview := BuildOverview(payload, DefaultConfig(), Options{Now: now, Week: attendance.WeekAll})

	require.Len(t, overview.BreakEntries, 6)
	assert.Equal(t, "2025-01-10", overview.BreakEntries[0].Date)
	assert.Equal(t, "2025-01-05", overview.BreakEntries[5].Date)

	assert.Equal(t, int64(8*30*60000), overview.RecentBreakMs)
}

// No backend totals: 4 present + 2 partial + 4 absent yields a 50% rate with
// partial days credited at half weight.
func TestBuildOverview_RateFallback(t *testing.T) {
	t.Parallel()

	var attended []attendance.AttendedDay
	for i := 1; i <= 4; i++ {
		attended = append(attended, attendance.AttendedDay{
			Date:     fmt.Sprintf("2025-01-%02d", i),
			CheckIn:  strPtr(fmt.Sprintf("2025-01-%02dT09:00:00Z", i)),
			CheckOut: strPtr(fmt.Sprintf("2025-01-%02dT17:00:00Z", i)),
		})
	}
	for i := 5; i <= 6; i++ {
		attended = append(attended, attendance.AttendedDay{
			Date:    fmt.Sprintf("2025-01-%02d", i),
			CheckIn: strPtr(fmt.Sprintf("2025-01-%02dT09:00:00Z", i)),
		})
	}
	var absent []attendance.AbsentDay
	for i := 7; i <= 10; i++ {
		absent = append(absent, attendance.AbsentDay{Date: fmt.Sprintf("2025-01-%02d", i)})
	}

	payload := attendance.LogPayload{
		Events: []attendance.EventLog{
			{EventID: 1, EventTitle: "Go Fundamentals", AttendedDays: attended, AbsentDays: absent},
		},
	}

	overview := buildTestOverview(payload, "")

	assert.Equal(t, 10, overview.Stats.TotalDays)
	assert.Equal(t, 4, overview.Stats.PresentDays)
	assert.Equal(t, 4, overview.Stats.AbsentDays)
	assert.InDelta(t, 50.0, overview.Stats.AttendanceRate, 1e-9)
}

// Backend-supplied totals are authoritative regardless of per-day detail.
func TestBuildOverview_AuthoritativeStats(t *testing.T) {
	t.Parallel()

	payload := attendance.LogPayload{
		AttendanceDays: 18,
		AbsentDays:     2,
		Events: []attendance.EventLog{
			{
				EventID:    1,
				EventTitle: "Go Fundamentals",
				AbsentDays: []attendance.AbsentDay{{Date: "2025-01-13"}},
			},
		},
	}

	overview := buildTestOverview(payload, "")

	assert.Equal(t, attendance.AggregateStats{
		TotalDays:      20,
		PresentDays:    18,
		AbsentDays:     2,
		AttendanceRate: 90,
	}, overview.Stats)
}

func flaggedPayload() attendance.LogPayload {
	return attendance.LogPayload{
		Events: []attendance.EventLog{
			{
				EventID:    7,
				EventTitle: "Cloud Bootcamp",
				FlaggedDays: []attendance.FlaggedDayLog{
					{
						Date:       "2025-01-13",
						Type:       strPtr("excessive_break"),
						BreakHours: attendance.FlexFloat{Value: 2.5, Valid: true},
					},
					{
						Date:       "2025-01-16",
						Type:       strPtr("excessive_break"),
						BreakHours: attendance.FlexFloat{Value: 1.5, Valid: true},
					},
					{
						Date: "2025-01-06",
						Type: strPtr("missing_checkout"),
					},
				},
			},
		},
	}
}

func TestBuildOverview_FlaggedWeekBuckets(t *testing.T) {
	t.Parallel()

	overview := buildTestOverview(flaggedPayload(), "")

	require.Len(t, overview.FlaggedDays, 3)
	// Flagged days sort descending by date.
	assert.Equal(t, "2025-01-16", overview.FlaggedDays[0].Date)
	assert.Equal(t, "2025-01-06", overview.FlaggedDays[2].Date)
	// Flags inherit the enclosing event's identity.
	assert.Equal(t, int64(7), overview.FlaggedDays[0].EventID)
	assert.Equal(t, "Cloud Bootcamp", overview.FlaggedDays[0].EventTitle)

	require.Len(t, overview.WeekOptions, 2)
	// Most recent week first.
	assert.Equal(t, "2025-01-12", overview.WeekOptions[0].Key)
	assert.Equal(t, "2025-01-05", overview.WeekOptions[1].Key)
	assert.Equal(t, "Jan 12 – Jan 18", overview.WeekOptions[0].Label)

	// Both flagged days of the recent week sum into its bucket.
	assert.InDelta(t, 4.0, overview.WeekOptions[0].TotalBreakHours, 1e-9)
	assert.Equal(t, "4h", overview.WeekOptions[0].TotalBreakLabel)
	// A flag without break hours contributes nothing.
	assert.InDelta(t, 0.0, overview.WeekOptions[1].TotalBreakHours, 1e-9)
}

func TestBuildOverview_WeekFilter(t *testing.T) {
	t.Parallel()

	overview := buildTestOverview(flaggedPayload(), "2025-01-12")

	assert.Equal(t, "2025-01-12", overview.ActiveWeek)
	require.Len(t, overview.FlaggedDays, 2)
	for _, f := range overview.FlaggedDays {
		assert.Equal(t, "2025-01-12", f.WeekKey)
	}
	// Week options always cover the full set, not the filtered view.
	assert.Len(t, overview.WeekOptions, 2)
}

// A filter pinned to a week absent from the data resets to "all".
func TestBuildOverview_StaleWeekFilterResets(t *testing.T) {
	t.Parallel()

	overview := buildTestOverview(flaggedPayload(), "2024-11-03")

	assert.Equal(t, attendance.WeekAll, overview.ActiveWeek)
	assert.Len(t, overview.FlaggedDays, 3)
}

func TestBuildOverview_WeeklyBreakLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.WeeklyBreakLimit = 3

	overview := BuildOverview(flaggedPayload(), cfg, Options{Now: testNow, Week: attendance.WeekAll})

	require.Len(t, overview.WeekOptions, 2)
	assert.True(t, overview.WeekOptions[0].OverLimit)  // 4h > 3h
	assert.False(t, overview.WeekOptions[1].OverLimit) // 0h
}
