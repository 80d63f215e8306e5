package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
)

// PayrollJobs keeps the current month's ledger rows in step with attendance,
// so dashboards reading the stored collection see fresh pending amounts.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	loc            *time.Location
	interval       time.Duration
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, loc *time.Location, interval time.Duration) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		payrollService: payrollService,
		loc:            loc,
		interval:       interval,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_payroll_ledger", j.interval, j.RefreshLedger)
}

// RefreshLedger creates missing entries and recomputes pending ones.
func (j *PayrollJobs) RefreshLedger(ctx context.Context) error {
	month := j.now().In(j.loc).Format(timeutil.MonthLayout)

	resp, err := j.payrollService.GetMonth(ctx, payroll.PayrollFilter{Month: month})
	if err != nil {
		return fmt.Errorf("refresh payroll %s: %w", month, err)
	}

	slog.Debug("Cron: Payroll ledger refreshed",
		"month", month,
		"entries", len(resp.Entries),
		"pending", resp.Summary.PendingCount,
	)
	return nil
}
