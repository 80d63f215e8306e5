package attendance

import (
	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// PolicyFor extracts the evaluation settings of an employee.
func PolicyFor(emp employee.Employee) attendance.Policy {
	return attendance.Policy{
		GracePeriodMinutes:   emp.GracePeriodMinutes,
		LateFineAmount:       emp.LateFineAmount,
		AllowEarlyExit:       emp.AllowEarlyExit,
		EarlyExitGracePeriod: emp.EarlyExitGracePeriod,
		EarlyExitFineAmount:  emp.EarlyExitFineAmount,
		AllowOvertime:        emp.AllowOvertime,
		HourlyRate:           emp.HourlyRate,
	}
}

// EvaluatePunch classifies one day and prices it.
//
// A blank check-in is an absence regardless of the check-out. A check-in
// after the grace window is late and carries the flat late fine; delay is
// counted from the end of the grace window. With a check-out, worked minutes
// are paid at the hourly rate, leaving before the early-exit window marks
// the day early-exit (overriding late), and staying past the shift end earns
// overtime when allowed. Fines accumulate independently of the status.
func EvaluatePunch(punch attendance.Punch, sched schedule.Resolved, policy attendance.Policy) attendance.Outcome {
	out := attendance.Outcome{
		Status:          attendance.StatusAbsent,
		LateFine:        decimal.Zero,
		EarlyExitFine:   decimal.Zero,
		DeductionAmount: decimal.Zero,
		BonusAmount:     decimal.Zero,
		ShiftSalary:     decimal.Zero,
	}

	if timeutil.IsBlank(punch.CheckIn) {
		return out
	}
	checkIn, ok := timeutil.ClockMinutes(punch.CheckIn)
	if !ok {
		return out
	}
	out.Status = attendance.StatusPresent

	if expectedIn, ok := timeutil.ClockMinutes(sched.ExpectedCheckIn); ok {
		threshold := expectedIn + policy.GracePeriodMinutes
		if checkIn > threshold {
			out.Status = attendance.StatusLate
			out.DelayMinutes = checkIn - threshold
			out.LateFine = policy.LateFineAmount
		}
	}

	if !timeutil.IsBlank(punch.CheckOut) {
		if checkOut, ok := timeutil.ClockMinutes(punch.CheckOut); ok {
			evaluateCheckOut(&out, checkIn, checkOut, sched, policy)
		}
	}

	out.DeductionAmount = out.LateFine.Add(out.EarlyExitFine)
	return out
}

func evaluateCheckOut(out *attendance.Outcome, checkIn, checkOut int, sched schedule.Resolved, policy attendance.Policy) {
	if worked := checkOut - checkIn; worked > 0 {
		out.ShiftSalary = minutesPay(worked, policy.HourlyRate)
	}

	expectedOut, ok := timeutil.ClockMinutes(sched.ExpectedCheckOut)
	if !ok {
		return
	}

	if checkOut < expectedOut-policy.EarlyExitGracePeriod {
		out.Status = attendance.StatusEarlyExit
		if !policy.AllowEarlyExit {
			out.EarlyExitFine = policy.EarlyExitFineAmount
		}
	}

	if checkOut > expectedOut && policy.AllowOvertime {
		out.OvertimeMinutes = checkOut - expectedOut
		out.BonusAmount = minutesPay(out.OvertimeMinutes, policy.HourlyRate)
	}
}

// minutesPay is round(minutes/60 * rate); a missing rate pays nothing.
func minutesPay(minutes int, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Mul(rate).Div(sixty).Round(0)
}

// Adjustments lists the automatic reward amounts of an outcome, one per
// kind, including zeros so that stale adjustments get cancelled.
func Adjustments(out attendance.Outcome) []reward.Adjustment {
	return []reward.Adjustment{
		{Kind: reward.KindLateFine, Amount: out.LateFine},
		{Kind: reward.KindEarlyExitFine, Amount: out.EarlyExitFine},
		{Kind: reward.KindOvertimeBonus, Amount: out.BonusAmount},
	}
}
