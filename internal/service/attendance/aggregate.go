package attendance

import (
	"sort"
	"time"

	"github.com/trainhub/trainhub-backend-go/internal/domain/attendance"
)

// Config carries the aggregation thresholds. Everything here is tunable via
// environment configuration; the engine itself never reads ambient state.
type Config struct {
	RecentBreakEntries int           // cap on the recent break-entries list
	RecentBreakWindow  time.Duration // rolling window for the recent break total
	WeeklyBreakLimit   float64       // break-hour limit a flagged week is compared against
}

func DefaultConfig() Config {
	return Config{
		RecentBreakEntries: 6,
		RecentBreakWindow:  7 * 24 * time.Hour,
		WeeklyBreakLimit:   5,
	}
}

// Options are the per-invocation inputs: the reference clock and the active
// week filter.
type Options struct {
	Now  time.Time
	Week string // attendance.WeekAll or a Sunday-aligned week key
}

// BuildOverview transforms a trainee's raw attendance log into the
// aggregated overview: per-day classification, break entries, flagged-day
// week buckets and headline statistics. The transform is pure; rerunning it
// on the same payload and options yields the same overview.
func BuildOverview(payload attendance.LogPayload, cfg Config, opts Options) attendance.Overview {
	if cfg.RecentBreakEntries <= 0 {
		cfg.RecentBreakEntries = 6
	}
	if cfg.RecentBreakWindow <= 0 {
		cfg.RecentBreakWindow = 7 * 24 * time.Hour
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	activeWeek := opts.Week
	if activeWeek == "" {
		activeWeek = attendance.WeekAll
	}

	days := buildDays(payload)
	breakEntries, recentMs := buildBreakEntries(payload, cfg, now)
	flaggedDays, weekOptions := buildFlaggedWeeks(payload, cfg)

	// A filter pinned to a week that no longer exists silently resets,
	// so stale selections never hide every row.
	if activeWeek != attendance.WeekAll && !hasWeekOption(weekOptions, activeWeek) {
		activeWeek = attendance.WeekAll
	}
	if activeWeek != attendance.WeekAll {
		flaggedDays = filterFlaggedByWeek(flaggedDays, activeWeek)
	}

	return attendance.Overview{
		Stats:            buildStats(payload, days),
		Days:             days,
		BreakEntries:     breakEntries,
		RecentBreakMs:    recentMs,
		RecentBreakLabel: formatDuration(recentMs),
		FlaggedDays:      flaggedDays,
		WeekOptions:      weekOptions,
		ActiveWeek:       activeWeek,
	}
}

// hasValidTime reports whether a nullable timestamp is set and parseable.
// An unparseable check-in counts the same as a missing one.
func hasValidTime(value *string) bool {
	if value == nil {
		return false
	}
	_, ok := parseDateValue(*value)
	return ok
}

func buildDays(payload attendance.LogPayload) []attendance.AttendanceDay {
	type dayGroup struct {
		events      []attendance.DayEvent
		hasComplete bool
		hasPartial  bool
	}

	groups := make(map[string]*dayGroup)
	group := func(date string) *dayGroup {
		g, ok := groups[date]
		if !ok {
			g = &dayGroup{}
			groups[date] = g
		}
		return g
	}

	for _, ev := range payload.Events {
		for _, d := range ev.AttendedDays {
			g := group(d.Date)

			dayEvent := attendance.DayEvent{
				EventID:    ev.EventID,
				EventTitle: ev.EventTitle,
				CheckIn:    d.CheckIn,
				CheckOut:   d.CheckOut,
			}

			checkedIn := hasValidTime(d.CheckIn)
			checkedOut := hasValidTime(d.CheckOut)
			switch {
			case checkedIn && checkedOut:
				g.hasComplete = true
				if ms, ok := durationMs(*d.CheckIn, *d.CheckOut); ok {
					label := formatDuration(ms)
					dayEvent.Duration = &label
				}
			case checkedIn:
				g.hasPartial = true
			}

			g.events = append(g.events, dayEvent)
		}

		for _, d := range ev.AbsentDays {
			g := group(d.Date)
			g.events = append(g.events, attendance.DayEvent{
				EventID:    ev.EventID,
				EventTitle: ev.EventTitle,
			})
		}
	}

	dates := make([]string, 0, len(groups))
	for date := range groups {
		dates = append(dates, date)
	}
	// ISO dates sort correctly as plain strings.
	sort.Strings(dates)

	days := make([]attendance.AttendanceDay, 0, len(dates))
	for _, date := range dates {
		g := groups[date]
		status := attendance.DayStatusAbsent
		switch {
		case g.hasComplete:
			status = attendance.DayStatusPresent
		case g.hasPartial:
			status = attendance.DayStatusPartial
		}
		days = append(days, attendance.AttendanceDay{
			Date:   date,
			Status: status,
			Events: g.events,
		})
	}

	return days
}

// extractBreakEntry builds a break entry for one attended day. Days carrying
// neither intervals nor a pre-aggregated total produce no entry at all.
func extractBreakEntry(ev attendance.EventLog, d attendance.AttendedDay) (attendance.BreakEntry, bool) {
	details := make([]attendance.BreakIntervalDetail, 0, len(d.BreakIntervals))
	var summedMs int64

	for _, interval := range d.BreakIntervals {
		detail := attendance.BreakIntervalDetail{
			Start: interval.Start,
			End:   interval.End,
		}
		if interval.End == nil {
			detail.Duration = "Ongoing"
		} else if ms, ok := durationMs(interval.Start, *interval.End); ok {
			detail.DurationMs = &ms
			detail.Duration = formatDuration(ms)
			summedMs += ms
		}
		details = append(details, detail)
	}

	// The backend's pre-aggregated figure wins when non-zero: it may cover
	// break time the interval list no longer carries.
	var sourceMs int64
	if d.BreakAccumulated != nil {
		sourceMs, _ = parseClockDuration(*d.BreakAccumulated)
	} else if d.BreakTime != nil {
		sourceMs, _ = parseClockDuration(*d.BreakTime)
	}

	totalMs := sourceMs
	if totalMs <= 0 {
		totalMs = summedMs
	}

	if len(d.BreakIntervals) == 0 && sourceMs <= 0 {
		return attendance.BreakEntry{}, false
	}

	return attendance.BreakEntry{
		Date:            d.Date,
		EventTitle:      ev.EventTitle,
		Intervals:       details,
		TotalDurationMs: totalMs,
		TotalDuration:   formatDuration(totalMs),
	}, true
}

func buildBreakEntries(payload attendance.LogPayload, cfg Config, now time.Time) ([]attendance.BreakEntry, int64) {
	entries := make([]attendance.BreakEntry, 0)
	for _, ev := range payload.Events {
		for _, d := range ev.AttendedDays {
			if entry, ok := extractBreakEntry(ev, d); ok {
				entries = append(entries, entry)
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	// The rolling window total scans the full set before the display cap.
	var recentMs int64
	windowStart := now.Add(-cfg.RecentBreakWindow)
	for _, entry := range entries {
		day, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		if !day.Before(windowStart) && !day.After(now) {
			recentMs += entry.TotalDurationMs
		}
	}

	// Keep the most recent entries, newest first.
	if len(entries) > cfg.RecentBreakEntries {
		entries = entries[len(entries)-cfg.RecentBreakEntries:]
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, recentMs
}

func buildFlaggedWeeks(payload attendance.LogPayload, cfg Config) ([]attendance.FlaggedDay, []attendance.WeekBucket) {
	flagged := make([]attendance.FlaggedDay, 0)
	weekTotals := make(map[string]float64)
	weekStarts := make(map[string]time.Time)

	for _, ev := range payload.Events {
		for _, f := range ev.FlaggedDays {
			day := attendance.FlaggedDay{
				EventID:        f.Event.ID,
				EventTitle:     f.Event.Title,
				Date:           f.Date,
				CheckIn:        f.CheckIn,
				CheckOut:       f.CheckOut,
				BreakIntervals: f.BreakIntervals,
				Notes:          f.Notes,
			}
			// Flags nested under an event inherit its identity unless the
			// payload referenced another event explicitly.
			if day.EventID == 0 {
				day.EventID = ev.EventID
			}
			if day.EventTitle == "" {
				day.EventTitle = ev.EventTitle
			}
			if f.Type != nil {
				day.Type = *f.Type
			}
			day.BreakHours = f.BreakHours.Ptr()
			if day.BreakHours != nil {
				day.BreakLabel = formatDecimalHours(*day.BreakHours)
			}

			if parsed, err := time.Parse("2006-01-02", f.Date); err == nil {
				key := weekKeyFor(parsed)
				day.WeekKey = key
				if _, seen := weekStarts[key]; !seen {
					weekStarts[key] = weekStart(parsed)
				}
				if f.BreakHours.Valid {
					weekTotals[key] += f.BreakHours.Value
				}
			}

			flagged = append(flagged, day)
		}
	}

	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].Date > flagged[j].Date
	})

	buckets := make([]attendance.WeekBucket, 0, len(weekStarts))
	for key, start := range weekStarts {
		total := weekTotals[key]
		buckets = append(buckets, attendance.WeekBucket{
			Key:             key,
			Label:           weekLabel(start),
			TotalBreakHours: total,
			TotalBreakLabel: formatDecimalHours(total),
			OverLimit:       cfg.WeeklyBreakLimit > 0 && total > cfg.WeeklyBreakLimit,
		})
	}
	// Most recent week first.
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key > buckets[j].Key
	})

	return flagged, buckets
}

func hasWeekOption(buckets []attendance.WeekBucket, key string) bool {
	for _, b := range buckets {
		if b.Key == key {
			return true
		}
	}
	return false
}

func filterFlaggedByWeek(flagged []attendance.FlaggedDay, key string) []attendance.FlaggedDay {
	filtered := make([]attendance.FlaggedDay, 0, len(flagged))
	for _, f := range flagged {
		if f.WeekKey == key {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func buildStats(payload attendance.LogPayload, days []attendance.AttendanceDay) attendance.AggregateStats {
	// Backend headline totals are authoritative when supplied; the locally
	// derived day list only feeds the detail view, so subtle differences in
	// the backend's definition of "present" never drift the headline rate.
	if payload.AttendanceDays > 0 || payload.AbsentDays > 0 {
		total := payload.AttendanceDays + payload.AbsentDays
		rate := 0.0
		if total > 0 {
			rate = float64(payload.AttendanceDays) / float64(total) * 100
		}
		return attendance.AggregateStats{
			TotalDays:      total,
			PresentDays:    payload.AttendanceDays,
			AbsentDays:     payload.AbsentDays,
			AttendanceRate: rate,
		}
	}

	var present, partial, absent int
	for _, d := range days {
		switch d.Status {
		case attendance.DayStatusPresent:
			present++
		case attendance.DayStatusPartial:
			partial++
		default:
			absent++
		}
	}

	total := len(days)
	rate := 0.0
	if total > 0 {
		// Partial days credit at half weight.
		rate = (float64(present) + float64(partial)*0.5) / float64(total) * 100
	}

	return attendance.AggregateStats{
		TotalDays:      total,
		PresentDays:    present,
		AbsentDays:     absent,
		AttendanceRate: rate,
	}
}
