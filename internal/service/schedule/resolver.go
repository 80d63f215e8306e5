package schedule

import (
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
	"github.com/shopspring/decimal"
)

var weeksPerMonth = decimal.RequireFromString(schedule.AverageWeeksPerMonth)

// ResolveSchedule returns the expected shift of emp on date. A weekday with
// no schedule entry is off on Friday and Saturday and follows the nominal
// shift otherwise. It never fails.
func ResolveSchedule(emp employee.Employee, date time.Time) schedule.Resolved {
	day := employee.WeekdayOf(date)
	resolved := schedule.Resolved{
		Date:             date.Format(timeutil.DateLayout),
		IsWorkingDay:     !day.IsWeekend(),
		ExpectedCheckIn:  emp.CheckInTime,
		ExpectedCheckOut: emp.CheckOutTime,
	}

	entry, ok := emp.Day(day)
	if !ok {
		return resolved
	}

	resolved.IsWorkingDay = !entry.IsOff
	if !entry.IsOff {
		if entry.StartTime != "" {
			resolved.ExpectedCheckIn = entry.StartTime
		}
		if entry.EndTime != "" {
			resolved.ExpectedCheckOut = entry.EndTime
		}
	}
	return resolved
}

// WeeklyMinutes sums the scheduled minutes of the working entries.
// Shifts ending before they start cross midnight.
func WeeklyMinutes(days []employee.WorkingDay) int {
	total := 0
	for _, wd := range days {
		if wd.IsOff {
			continue
		}
		start, okStart := timeutil.ClockMinutes(wd.StartTime)
		end, okEnd := timeutil.ClockMinutes(wd.EndTime)
		if !okStart || !okEnd {
			continue
		}
		total += timeutil.ShiftMinutes(start, end)
	}
	return total
}

// ComputeHourlyRate spreads salary over weekly hours times 4.33 weeks,
// rounded to a whole unit. No scheduled hours gives a zero rate.
func ComputeHourlyRate(salary decimal.Decimal, days []employee.WorkingDay) decimal.Decimal {
	minutes := WeeklyMinutes(days)
	if minutes == 0 {
		return decimal.Zero
	}
	weeklyHours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
	monthlyHours := weeklyHours.Mul(weeksPerMonth)
	return salary.Div(monthlyHours).Round(0)
}

// ExpectedWorkingDays counts the working days of month for emp, falling
// back to the company default when the schedule yields none.
func ExpectedWorkingDays(emp employee.Employee, month time.Time) int {
	count := 0
	for _, day := range timeutil.DaysInMonth(month) {
		if ResolveSchedule(emp, day).IsWorkingDay {
			count++
		}
	}
	if count == 0 {
		return schedule.DefaultExpectedWorkingDays
	}
	return count
}
