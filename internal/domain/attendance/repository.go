package attendance

import "context"

// AttendanceRepository stores at most one record per (employee, date).
type AttendanceRepository interface {
	// Upsert replaces any record with the same employee and date
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	// CloseSession replaces the stored record only while it is still the open
	// session it was read as: same check-in and no check-out. Otherwise it
	// fails with ErrSessionNotOpen.
	CloseSession(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when nothing was saved for that day
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// GetOpenSessions returns records with a check-in but no check-out
	GetOpenSessions(ctx context.Context, date string) ([]Attendance, error)

	Delete(ctx context.Context, id string) error
}
