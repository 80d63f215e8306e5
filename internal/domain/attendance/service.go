package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// SaveAttendance evaluates a punch and upserts the day's record,
	// syncing the automatic fines and bonuses derived from it
	SaveAttendance(ctx context.Context, req SaveAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single saved record
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// GetDay lists one row per employee for a date, virtual where nothing was saved
	GetDay(ctx context.Context, filter DayFilter) (DayResponse, error)

	// ListAttendance lists saved records
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	DeleteAttendance(ctx context.Context, id string) error

	// AutoCheckOut closes open sessions whose shift ended long enough before now
	AutoCheckOut(ctx context.Context, now time.Time) (int, error)
}
