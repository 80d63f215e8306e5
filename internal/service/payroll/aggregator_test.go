package payroll

import (
	"fmt"
	"testing"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func may2024() time.Time {
	return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
}

func presentDay(empID string, day int) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID:      empID,
		Date:            fmt.Sprintf("2024-05-%02d", day),
		Status:          attendance.StatusPresent,
		DeductionAmount: decimal.Zero,
		BonusAmount:     decimal.Zero,
	}
}

func TestAggregateMonth(t *testing.T) {
	emp := employee.Employee{ID: "e1", Salary: decimal.NewFromInt(1500000)}

	var records []attendance.Attendance
	for day := 1; day <= 20; day++ {
		records = append(records, presentDay("e1", day))
	}
	records[3].Status = attendance.StatusLate
	records[3].DeductionAmount = decimal.NewFromInt(10000)
	records = append(records,
		attendance.Attendance{EmployeeID: "e1", Date: "2024-05-21", Status: attendance.StatusAbsent},
		attendance.Attendance{EmployeeID: "e1", Date: "2024-05-22", Status: attendance.StatusOnLeave},
		attendance.Attendance{EmployeeID: "e1", Date: "2024-06-01", Status: attendance.StatusPresent},
		attendance.Attendance{EmployeeID: "e2", Date: "2024-05-02", Status: attendance.StatusPresent},
	)

	rewards := []reward.Reward{
		{EmployeeID: "e1", Date: "2024-05-10", Type: reward.TypeBonus, Amount: decimal.NewFromInt(50000), Status: reward.StatusApproved, Source: reward.SourceManual},
		{EmployeeID: "e1", Date: "2024-05-11", Type: reward.TypeDeduction, Amount: decimal.NewFromInt(7000), Status: reward.StatusCancelled, Source: reward.SourceManual},
		{EmployeeID: "e1", Date: "2024-05-04", Type: reward.TypeDeduction, Amount: decimal.NewFromInt(10000), Status: reward.StatusApproved, Source: reward.SourceAutomatic, Kind: reward.KindLateFine},
		{EmployeeID: "e1", Date: "2024-04-30", Type: reward.TypeBonus, Amount: decimal.NewFromInt(90000), Status: reward.StatusApproved, Source: reward.SourceManual},
		{EmployeeID: "e2", Date: "2024-05-10", Type: reward.TypeBonus, Amount: decimal.NewFromInt(90000), Status: reward.StatusApproved, Source: reward.SourceManual},
	}

	agg := AggregateMonth(emp, may2024(), records, rewards)

	assert.Equal(t, 22, agg.ExpectedWorkingDays)
	assert.Equal(t, 20, agg.PresentDays)
	assert.Equal(t, 1, agg.AbsentDays)
	assert.Equal(t, "10000", agg.AutoFines.String())
	assert.Equal(t, "0", agg.AutoBonus.String())
	assert.Equal(t, "50000", agg.ManualBonus.String())
	assert.Equal(t, "0", agg.ManualDeduction.String())
	assert.Equal(t, "68181.82", agg.DailyRate.String())
	assert.Equal(t, "1363636", agg.EarnedSalary.String())
	assert.Equal(t, "1403636", agg.NetSalary.String())
}

func TestAggregateMonth_EmptyMonth(t *testing.T) {
	emp := employee.Employee{ID: "e1", Salary: decimal.NewFromInt(1000000)}
	agg := AggregateMonth(emp, may2024(), nil, nil)

	assert.Equal(t, 0, agg.PresentDays)
	assert.True(t, agg.EarnedSalary.IsZero())
	assert.True(t, agg.NetSalary.IsZero())
}

func TestAggregateMonth_NoWorkingDaysFallsBack(t *testing.T) {
	emp := employee.Employee{ID: "e1", Salary: decimal.NewFromInt(2200000)}
	for _, d := range employee.Weekdays {
		emp.WorkingDays = append(emp.WorkingDays, employee.WorkingDay{Day: d, IsOff: true})
	}
	records := []attendance.Attendance{presentDay("e1", 3)}

	agg := AggregateMonth(emp, may2024(), records, nil)

	assert.Equal(t, 22, agg.ExpectedWorkingDays)
	assert.Equal(t, "100000", agg.EarnedSalary.String())
}
