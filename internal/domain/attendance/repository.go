package attendance

import "context"

// AttendanceRepository assembles the raw attendance log for a trainee.
type AttendanceRepository interface {
	// GetAttendanceLog returns the trainee's full log: per-event attended,
	// absent and flagged days plus the pre-computed headline totals.
	GetAttendanceLog(ctx context.Context, traineeID string) (LogPayload, error)

	// TraineeExists reports whether the trainee is enrolled in any program.
	TraineeExists(ctx context.Context, traineeID string) (bool, error)
}
