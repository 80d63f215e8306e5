package payroll

import (
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	scheduleService "github.com/madar-hris/hrms-backend-go/internal/service/schedule"
	"github.com/shopspring/decimal"
)

// AggregateMonth derives the payroll figures of emp for month from the
// day records and the reward records. Records of other employees or months
// are ignored, so callers may pass whole collections.
//
// Automatic rewards mirror the fines and bonuses already carried by the day
// records and are skipped here; only approved manual rewards are summed.
func AggregateMonth(emp employee.Employee, month time.Time, records []attendance.Attendance, rewards []reward.Reward) payroll.Aggregate {
	key := month.Format(timeutil.MonthLayout)

	agg := payroll.Aggregate{
		BaseSalary:          emp.Salary,
		ExpectedWorkingDays: scheduleService.ExpectedWorkingDays(emp, month),
		AutoFines:           decimal.Zero,
		AutoBonus:           decimal.Zero,
		ManualBonus:         decimal.Zero,
		ManualDeduction:     decimal.Zero,
	}

	for _, rec := range records {
		if rec.EmployeeID != emp.ID || !timeutil.InMonth(rec.Date, key) {
			continue
		}
		switch {
		case rec.Status.Attended():
			agg.PresentDays++
		case rec.Status == attendance.StatusAbsent:
			agg.AbsentDays++
		}
		agg.AutoFines = agg.AutoFines.Add(rec.DeductionAmount)
		agg.AutoBonus = agg.AutoBonus.Add(rec.BonusAmount)
	}

	for _, r := range rewards {
		if r.EmployeeID != emp.ID || !timeutil.InMonth(r.Date, key) {
			continue
		}
		if !r.Counts() || r.Source == reward.SourceAutomatic {
			continue
		}
		switch r.Type {
		case reward.TypeBonus:
			agg.ManualBonus = agg.ManualBonus.Add(r.Amount)
		case reward.TypeDeduction:
			agg.ManualDeduction = agg.ManualDeduction.Add(r.Amount)
		}
	}

	dailyRate := emp.Salary.Div(decimal.NewFromInt(int64(agg.ExpectedWorkingDays)))
	agg.DailyRate = dailyRate.Round(2)
	agg.EarnedSalary = dailyRate.Mul(decimal.NewFromInt(int64(agg.PresentDays))).Round(0)
	agg.NetSalary = agg.EarnedSalary.
		Add(agg.AutoBonus).
		Add(agg.ManualBonus).
		Sub(agg.AutoFines).
		Sub(agg.ManualDeduction).
		Round(0)

	return agg
}
