package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	attendance.AttendanceService
	calls []time.Time
	err   error
}

func (s *stubAttendanceService) AutoCheckOut(ctx context.Context, now time.Time) (int, error) {
	s.calls = append(s.calls, now)
	return len(s.calls), s.err
}

type stubPayrollService struct {
	payroll.PayrollService
	months []string
}

func (s *stubPayrollService) GetMonth(ctx context.Context, filter payroll.PayrollFilter) (payroll.MonthResponse, error) {
	s.months = append(s.months, filter.Month)
	return payroll.MonthResponse{Month: filter.Month}, nil
}

func TestScheduler_RunOnce(t *testing.T) {
	baghdad := time.FixedZone("AST", 3*60*60)
	// 22:30 UTC on the last day of May is already June in Baghdad
	fixed := time.Date(2024, 5, 31, 22, 30, 0, 0, time.UTC)

	att := &stubAttendanceService{}
	attJobs := NewAttendanceJobs(att, baghdad, time.Minute)
	attJobs.now = func() time.Time { return fixed }

	pay := &stubPayrollService{}
	payJobs := NewPayrollJobs(pay, baghdad, time.Hour)
	payJobs.now = func() time.Time { return fixed }

	s := NewScheduler()
	attJobs.RegisterJobs(s)
	payJobs.RegisterJobs(s)
	assert.Equal(t, []string{"auto_check_out", "refresh_payroll_ledger"}, s.Names())

	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, att.calls, 1)
	assert.Equal(t, baghdad, att.calls[0].Location())
	assert.Equal(t, 1, att.calls[0].Hour())
	assert.Equal(t, []string{"2024-06"}, pay.months)
}

func TestScheduler_RunOnce_JoinsErrors(t *testing.T) {
	boom := errors.New("store unavailable")
	att := &stubAttendanceService{err: boom}

	s := NewScheduler()
	NewAttendanceJobs(att, nil, 0).RegisterJobs(s)
	s.AddJob("noop", time.Hour, func(ctx context.Context) error { return nil })

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "auto_check_out")
}

func TestScheduler_StartStop(t *testing.T) {
	ran := make(chan struct{}, 1)

	s := NewScheduler()
	s.AddJob("signal", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("boom")
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
