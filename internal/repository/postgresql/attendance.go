package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/trainhub/trainhub-backend-go/internal/domain/attendance"
	"github.com/trainhub/trainhub-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// timestampToString safely converts a *time.Time to an RFC3339 string.
func timestampToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// TraineeExists implements attendance.AttendanceRepository.
func (r *attendanceRepository) TraineeExists(ctx context.Context, traineeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM trainees WHERE id = $1)`, traineeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check trainee existence: %w", err)
	}
	return exists, nil
}

// GetAttendanceLog implements attendance.AttendanceRepository. The log is
// assembled per event: attended days with their break intervals, absent days
// and backend-flagged days, plus the headline totals.
func (r *attendanceRepository) GetAttendanceLog(ctx context.Context, traineeID string) (attendance.LogPayload, error) {
	var payload attendance.LogPayload

	if err := r.loadTotals(ctx, traineeID, &payload); err != nil {
		return attendance.LogPayload{}, err
	}

	events := make(map[int64]*attendance.EventLog)
	var order []int64
	eventFor := func(id int64, title string, start, end time.Time) *attendance.EventLog {
		ev, ok := events[id]
		if !ok {
			ev = &attendance.EventLog{
				EventID:    id,
				EventTitle: title,
				StartTime:  start.UTC().Format(time.RFC3339),
				EndTime:    end.UTC().Format(time.RFC3339),
			}
			events[id] = ev
			order = append(order, id)
		}
		return ev
	}

	intervals, err := r.loadBreakIntervals(ctx, traineeID)
	if err != nil {
		return attendance.LogPayload{}, err
	}

	if err := r.loadAttendedDays(ctx, traineeID, eventFor, intervals); err != nil {
		return attendance.LogPayload{}, err
	}
	if err := r.loadAbsentDays(ctx, traineeID, eventFor); err != nil {
		return attendance.LogPayload{}, err
	}
	if err := r.loadFlaggedDays(ctx, traineeID, eventFor); err != nil {
		return attendance.LogPayload{}, err
	}

	payload.Events = make([]attendance.EventLog, 0, len(order))
	for _, id := range order {
		payload.Events = append(payload.Events, *events[id])
	}

	return payload, nil
}

func (r *attendanceRepository) loadTotals(ctx context.Context, traineeID string, payload *attendance.LogPayload) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(DISTINCT date) FROM event_attendance
			 WHERE trainee_id = $1 AND check_in IS NOT NULL AND check_out IS NOT NULL),
			(SELECT COUNT(DISTINCT date) FROM event_absences
			 WHERE trainee_id = $1)
	`

	if err := q.QueryRow(ctx, query, traineeID).Scan(&payload.AttendanceDays, &payload.AbsentDays); err != nil {
		return fmt.Errorf("failed to get attendance totals: %w", err)
	}
	return nil
}

type breakIntervalKey struct {
	eventID int64
	date    string
}

func (r *attendanceRepository) loadBreakIntervals(ctx context.Context, traineeID string) (map[breakIntervalKey][]attendance.BreakInterval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.event_id, a.date, b.start_time, b.end_time
		FROM break_intervals b
		JOIN event_attendance a ON a.id = b.attendance_id
		WHERE a.trainee_id = $1
		ORDER BY a.event_id, a.date, b.start_time
	`

	rows, err := q.Query(ctx, query, traineeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get break intervals: %w", err)
	}
	defer rows.Close()

	intervals := make(map[breakIntervalKey][]attendance.BreakInterval)
	for rows.Next() {
		var eventID int64
		var date time.Time
		var start time.Time
		var end *time.Time

		if err := rows.Scan(&eventID, &date, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}

		key := breakIntervalKey{eventID: eventID, date: date.Format("2006-01-02")}
		intervals[key] = append(intervals[key], attendance.BreakInterval{
			Start: start.UTC().Format(time.RFC3339),
			End:   timestampToString(end),
		})
	}

	return intervals, rows.Err()
}

func (r *attendanceRepository) loadAttendedDays(
	ctx context.Context,
	traineeID string,
	eventFor func(int64, string, time.Time, time.Time) *attendance.EventLog,
	intervals map[breakIntervalKey][]attendance.BreakInterval,
) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.title, e.start_time, e.end_time,
		       a.date, a.check_in, a.check_out, a.break_accumulated
		FROM event_attendance a
		JOIN events e ON e.id = a.event_id
		WHERE a.trainee_id = $1
		ORDER BY e.id, a.date
	`

	rows, err := q.Query(ctx, query, traineeID)
	if err != nil {
		return fmt.Errorf("failed to get attended days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var title string
		var eventStart, eventEnd, date time.Time
		var checkIn, checkOut *time.Time
		var breakAccumulated *string

		if err := rows.Scan(&eventID, &title, &eventStart, &eventEnd, &date, &checkIn, &checkOut, &breakAccumulated); err != nil {
			return fmt.Errorf("failed to scan attended day: %w", err)
		}

		dateStr := date.Format("2006-01-02")
		ev := eventFor(eventID, title, eventStart, eventEnd)
		ev.AttendedDays = append(ev.AttendedDays, attendance.AttendedDay{
			Date:             dateStr,
			CheckIn:          timestampToString(checkIn),
			CheckOut:         timestampToString(checkOut),
			BreakAccumulated: breakAccumulated,
			BreakIntervals:   intervals[breakIntervalKey{eventID: eventID, date: dateStr}],
		})
	}

	return rows.Err()
}

func (r *attendanceRepository) loadAbsentDays(
	ctx context.Context,
	traineeID string,
	eventFor func(int64, string, time.Time, time.Time) *attendance.EventLog,
) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.title, e.start_time, e.end_time, ab.date
		FROM event_absences ab
		JOIN events e ON e.id = ab.event_id
		WHERE ab.trainee_id = $1
		ORDER BY e.id, ab.date
	`

	rows, err := q.Query(ctx, query, traineeID)
	if err != nil {
		return fmt.Errorf("failed to get absent days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var title string
		var eventStart, eventEnd, date time.Time

		if err := rows.Scan(&eventID, &title, &eventStart, &eventEnd, &date); err != nil {
			return fmt.Errorf("failed to scan absent day: %w", err)
		}

		ev := eventFor(eventID, title, eventStart, eventEnd)
		ev.AbsentDays = append(ev.AbsentDays, attendance.AbsentDay{
			Date: date.Format("2006-01-02"),
		})
	}

	return rows.Err()
}

func (r *attendanceRepository) loadFlaggedDays(
	ctx context.Context,
	traineeID string,
	eventFor func(int64, string, time.Time, time.Time) *attendance.EventLog,
) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.title, e.start_time, e.end_time,
		       f.date, f.flag_type, f.break_hours, f.check_in, f.check_out, f.notes
		FROM flagged_days f
		JOIN events e ON e.id = f.event_id
		WHERE f.trainee_id = $1
		ORDER BY e.id, f.date
	`

	rows, err := q.Query(ctx, query, traineeID)
	if err != nil {
		return fmt.Errorf("failed to get flagged days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var title string
		var eventStart, eventEnd, date time.Time
		var flagType *string
		var breakHours *float64
		var checkIn, checkOut *time.Time
		var notes *string

		if err := rows.Scan(&eventID, &title, &eventStart, &eventEnd, &date, &flagType, &breakHours, &checkIn, &checkOut, &notes); err != nil {
			return fmt.Errorf("failed to scan flagged day: %w", err)
		}

		var hours attendance.FlexFloat
		if breakHours != nil {
			hours = attendance.FlexFloat{Value: *breakHours, Valid: true}
		}

		ev := eventFor(eventID, title, eventStart, eventEnd)
		ev.FlaggedDays = append(ev.FlaggedDays, attendance.FlaggedDayLog{
			Event:      attendance.EventRef{ID: eventID, Title: title},
			Date:       date.Format("2006-01-02"),
			Type:       flagType,
			BreakHours: hours,
			CheckIn:    timestampToString(checkIn),
			CheckOut:   timestampToString(checkOut),
			Notes:      notes,
		})
	}

	return rows.Err()
}
