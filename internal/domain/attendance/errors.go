package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrSessionNotOpen     = errors.New("attendance session is no longer open")
)
