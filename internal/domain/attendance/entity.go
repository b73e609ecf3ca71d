package attendance

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ========================================
// RAW LOG PAYLOAD (repository output)
// ========================================

// LogPayload is the raw attendance log for one trainee across all of their
// scheduled training events. attendance_days/absent_days are pre-computed
// headline totals; when present (non-zero) they are authoritative over any
// re-derived per-day classification.
type LogPayload struct {
	AttendanceDays int        `json:"attendance_days"`
	AbsentDays     int        `json:"absent_days"`
	Events         []EventLog `json:"events"`
}

// EventLog groups one scheduled event's attended, absent and flagged days.
type EventLog struct {
	EventID      int64           `json:"event_id"`
	EventTitle   string          `json:"event_title"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	AttendedDays []AttendedDay   `json:"attended_days"`
	AbsentDays   []AbsentDay     `json:"absent_days"`
	FlaggedDays  []FlaggedDayLog `json:"flagged_days,omitempty"`
}

// AttendedDay is one check-in observation. CheckIn set with CheckOut unset
// means the session is still open ("partial"); both set is "complete".
// BreakAccumulated (falling back to BreakTime) is a pre-aggregated HH:MM:SS
// total that wins over the summed intervals when non-zero, because the
// interval list may be truncated in the payload.
type AttendedDay struct {
	Date             string          `json:"date"`
	CheckIn          *string         `json:"check_in"`
	CheckOut         *string         `json:"check_out"`
	BreakTime        *string         `json:"break_time,omitempty"`
	BreakAccumulated *string         `json:"break_accumulated,omitempty"`
	BreakIntervals   []BreakInterval `json:"break_intervals,omitempty"`
}

// BreakInterval is one away-span during an attended session. End == nil
// denotes a break still in progress.
type BreakInterval struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

type AbsentDay struct {
	Date string `json:"date"`
}

// FlaggedDayLog is a backend-marked anomaly (e.g. excessive break time).
type FlaggedDayLog struct {
	Event          EventRef        `json:"event"`
	Date           string          `json:"date"`
	Type           *string         `json:"type,omitempty"`
	BreakHours     FlexFloat       `json:"break_hours,omitempty"`
	CheckIn        *string         `json:"check_in,omitempty"`
	CheckOut       *string         `json:"check_out,omitempty"`
	BreakIntervals []BreakInterval `json:"break_intervals,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}

// ========================================
// FLEXIBLE PAYLOAD FIELDS
// ========================================

// EventRef identifies the event a flagged day belongs to. Older portal
// payloads emit a bare numeric id, newer ones a nested object; both decode
// into this single resolved form at ingestion so consumers never probe the
// shape at runtime.
type EventRef struct {
	ID    int64
	Title string // empty when only an id was supplied
}

func (r *EventRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = EventRef{}
		return nil
	}

	if id, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*r = EventRef{ID: id}
		return nil
	}

	var obj struct {
		EventID int64  `json:"event_id"`
		Title   string `json:"event_title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shape degrades to an unresolved reference.
		*r = EventRef{}
		return nil
	}
	*r = EventRef{ID: obj.EventID, Title: obj.Title}
	return nil
}

func (r EventRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID int64  `json:"event_id"`
		Title   string `json:"event_title,omitempty"`
	}{EventID: r.ID, Title: r.Title})
}

// FlexFloat decodes a numeric field that may arrive as a JSON number, a
// numeric string, or null. Unparseable and non-finite values decode to unset
// rather than poisoning downstream arithmetic with NaN.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}

	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*f = FlexFloat{Value: v, Valid: true}
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns the value as a nilable pointer for response DTOs.
func (f FlexFloat) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// ========================================
// DERIVED OVERVIEW (engine output)
// ========================================

type DayStatus string

const (
	DayStatusPresent DayStatus = "present"
	DayStatusPartial DayStatus = "partial"
	DayStatusAbsent  DayStatus = "absent"
)

// DayEvent is one event's detail within an AttendanceDay.
type DayEvent struct {
	EventID    int64   `json:"event_id"`
	EventTitle string  `json:"event_title"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`
	Duration   *string `json:"duration,omitempty"`
}

// AttendanceDay aggregates every record sharing one calendar date. A single
// completed session marks the whole day present even if another session that
// day was missed.
type AttendanceDay struct {
	Date   string     `json:"date"`
	Status DayStatus  `json:"status"`
	Events []DayEvent `json:"events"`
}

// BreakIntervalDetail is a break interval with its computed duration. Open
// intervals carry the "Ongoing" label and no duration.
type BreakIntervalDetail struct {
	Start      string  `json:"start"`
	End        *string `json:"end,omitempty"`
	DurationMs *int64  `json:"duration_ms,omitempty"`
	Duration   string  `json:"duration"`
}

// BreakEntry is one day-with-breaks. Days without any break information never
// produce an entry.
type BreakEntry struct {
	Date            string                `json:"date"`
	EventTitle      string                `json:"event_title"`
	Intervals       []BreakIntervalDetail `json:"intervals"`
	TotalDurationMs int64                 `json:"total_duration_ms"`
	TotalDuration   string                `json:"total_duration"`
}

// FlaggedDay is a normalized backend anomaly, week-keyed for filtering.
type FlaggedDay struct {
	EventID        int64           `json:"event_id"`
	EventTitle     string          `json:"event_title,omitempty"`
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	BreakHours     *float64        `json:"break_hours,omitempty"`
	BreakLabel     string          `json:"break_label,omitempty"`
	CheckIn        *string         `json:"check_in,omitempty"`
	CheckOut       *string         `json:"check_out,omitempty"`
	BreakIntervals []BreakInterval `json:"break_intervals,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	WeekKey        string          `json:"week_key"`
}

// WeekBucket is a Sunday-aligned 7-day grouping of flagged days.
type WeekBucket struct {
	Key             string  `json:"key"`   // ISO date of the week's Sunday
	Label           string  `json:"label"` // "Jan 4 – Jan 10"
	TotalBreakHours float64 `json:"total_break_hours"`
	TotalBreakLabel string  `json:"total_break_label"`
	OverLimit       bool    `json:"over_limit"`
}

type AggregateStats struct {
	TotalDays      int     `json:"total_days"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// Overview is the full aggregated view consumed by the portal front-end.
type Overview struct {
	Stats            AggregateStats  `json:"stats"`
	Days             []AttendanceDay `json:"days"`
	BreakEntries     []BreakEntry    `json:"break_entries"`
	RecentBreakMs    int64           `json:"recent_break_ms"`
	RecentBreakLabel string          `json:"recent_break_label,omitempty"`
	FlaggedDays      []FlaggedDay    `json:"flagged_days"`
	WeekOptions      []WeekBucket    `json:"week_options"`
	ActiveWeek       string          `json:"active_week"`
}
