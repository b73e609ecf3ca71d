package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/trainhub/trainhub-backend-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	cfg Config
	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, cfg Config) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		cfg:                  cfg,
		now:                  time.Now,
	}
}

// traineeIDFromContext extracts trainee_id from JWT claims. Tokens without a
// trainee profile (e.g. a mentor account) cannot view "my" attendance.
func (s *AttendanceServiceImpl) traineeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", attendance.ErrUnauthorized
	}

	traineeID, ok := claims["trainee_id"].(string)
	if !ok || traineeID == "" {
		return "", attendance.ErrUnauthorized
	}

	return traineeID, nil
}

// GetMyOverview implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyOverview(ctx context.Context, filter attendance.OverviewFilter) (attendance.Overview, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Overview{}, err
	}

	traineeID, err := s.traineeIDFromContext(ctx)
	if err != nil {
		return attendance.Overview{}, err
	}

	return s.overviewFor(ctx, traineeID, filter)
}

// GetTraineeOverview implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTraineeOverview(ctx context.Context, req attendance.TraineeOverviewRequest) (attendance.Overview, error) {
	if err := req.Validate(); err != nil {
		return attendance.Overview{}, err
	}

	exists, err := s.AttendanceRepository.TraineeExists(ctx, req.TraineeID)
	if err != nil {
		return attendance.Overview{}, fmt.Errorf("failed to check trainee: %w", err)
	}
	if !exists {
		return attendance.Overview{}, attendance.ErrTraineeNotFound
	}

	return s.overviewFor(ctx, req.TraineeID, req.Filter)
}

// GetMyLog implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyLog(ctx context.Context) (attendance.LogPayload, error) {
	traineeID, err := s.traineeIDFromContext(ctx)
	if err != nil {
		return attendance.LogPayload{}, err
	}

	payload, err := s.AttendanceRepository.GetAttendanceLog(ctx, traineeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.LogPayload{Events: []attendance.EventLog{}}, nil
		}
		return attendance.LogPayload{}, fmt.Errorf("failed to get attendance log: %w", err)
	}
	if payload.Events == nil {
		payload.Events = []attendance.EventLog{}
	}
	return payload, nil
}

func (s *AttendanceServiceImpl) overviewFor(ctx context.Context, traineeID string, filter attendance.OverviewFilter) (attendance.Overview, error) {
	payload, err := s.AttendanceRepository.GetAttendanceLog(ctx, traineeID)
	if err != nil {
		// A trainee with no rows yet degrades to an empty overview rather
		// than an error view.
		if errors.Is(err, pgx.ErrNoRows) {
			payload = attendance.LogPayload{}
		} else {
			return attendance.Overview{}, fmt.Errorf("failed to get attendance log: %w", err)
		}
	}

	return BuildOverview(payload, s.cfg, Options{
		Now:  s.now(),
		Week: filter.Week,
	}), nil
}
