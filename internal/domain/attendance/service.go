package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance overview operations
type AttendanceService interface {
	// GetMyOverview aggregates the authenticated trainee's attendance log
	GetMyOverview(ctx context.Context, filter OverviewFilter) (Overview, error)

	// GetTraineeOverview aggregates a specific trainee's log (mentor/admin)
	GetTraineeOverview(ctx context.Context, req TraineeOverviewRequest) (Overview, error)

	// GetMyLog returns the authenticated trainee's raw attendance log
	GetMyLog(ctx context.Context) (LogPayload, error)
}
