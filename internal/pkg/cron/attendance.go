package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
)

// AttendanceJobs closes the sessions employees forgot to check out of.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	interval          time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location, interval time.Duration) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		loc:               loc,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_check_out", j.interval, j.AutoCheckOut)
}

// AutoCheckOut runs the auto check-out sweep at the company's local time.
func (j *AttendanceJobs) AutoCheckOut(ctx context.Context) error {
	closed, err := j.attendanceService.AutoCheckOut(ctx, j.now().In(j.loc))
	if err != nil {
		return fmt.Errorf("auto check-out: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: Auto-closed open attendance sessions", "count", closed)
	}
	return nil
}
