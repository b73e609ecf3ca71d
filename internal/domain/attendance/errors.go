package attendance

import "errors"

// Attendance domain errors
var (
	ErrTraineeNotFound = errors.New("trainee not found")
	ErrUnauthorized    = errors.New("unauthorized to access this attendance log")
)
