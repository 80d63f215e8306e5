package schedule

import (
	"testing"
	"time"

	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestResolveSchedule(t *testing.T) {
	emp := employee.Employee{
		CheckInTime:  "08:00",
		CheckOutTime: "16:00",
		WorkingDays: []employee.WorkingDay{
			{Day: employee.Monday, StartTime: "09:00", EndTime: "17:00"},
			{Day: employee.Tuesday, IsOff: true, StartTime: "09:00", EndTime: "17:00"},
			{Day: employee.Friday, StartTime: "10:00", EndTime: "14:00"},
		},
	}

	tests := []struct {
		name    string
		date    string
		working bool
		in, out string
	}{
		// 2024-05-06 is a Monday.
		{"entry overrides nominal shift", "2024-05-06", true, "09:00", "17:00"},
		{"off entry ignores its times", "2024-05-07", false, "08:00", "16:00"},
		{"missing weekday uses nominal shift", "2024-05-08", true, "08:00", "16:00"},
		{"friday entry makes it a working day", "2024-05-10", true, "10:00", "14:00"},
		{"missing saturday defaults to off", "2024-05-11", false, "08:00", "16:00"},
		{"missing sunday defaults to working", "2024-05-12", true, "08:00", "16:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSchedule(emp, date(t, tt.date))
			assert.Equal(t, tt.working, got.IsWorkingDay)
			assert.Equal(t, tt.in, got.ExpectedCheckIn)
			assert.Equal(t, tt.out, got.ExpectedCheckOut)
			assert.Equal(t, tt.date, got.Date)
		})
	}
}

func TestComputeHourlyRate(t *testing.T) {
	t.Run("default week", func(t *testing.T) {
		days := employee.DefaultWorkingDays("08:00", "16:00")
		// 5 days x 8h x 4.33 = 173.2h; 1,000,000 / 173.2 = 5773.67
		got := ComputeHourlyRate(decimal.NewFromInt(1000000), days)
		assert.Equal(t, "5774", got.String())
	})

	t.Run("overnight shift counts as eight hours", func(t *testing.T) {
		days := []employee.WorkingDay{{Day: employee.Sunday, StartTime: "22:00", EndTime: "06:00"}}
		assert.Equal(t, 480, WeeklyMinutes(days))
		// 8h x 4.33 = 34.64h; 346,400 / 34.64 = 10000
		got := ComputeHourlyRate(decimal.NewFromInt(346400), days)
		assert.Equal(t, "10000", got.String())
	})

	t.Run("all days off gives zero", func(t *testing.T) {
		days := make([]employee.WorkingDay, 0, 7)
		for _, d := range employee.Weekdays {
			days = append(days, employee.WorkingDay{Day: d, IsOff: true, StartTime: "08:00", EndTime: "16:00"})
		}
		got := ComputeHourlyRate(decimal.NewFromInt(1500000), days)
		assert.True(t, got.IsZero())
	})

	t.Run("no schedule gives zero", func(t *testing.T) {
		assert.True(t, ComputeHourlyRate(decimal.NewFromInt(1500000), nil).IsZero())
	})
}

func TestExpectedWorkingDays(t *testing.T) {
	month := date(t, "2024-05-01")

	// May 2024: 31 days, 5 Fridays and 4 Saturdays.
	assert.Equal(t, 22, ExpectedWorkingDays(employee.Employee{}, month))

	sixDays := employee.Employee{WorkingDays: []employee.WorkingDay{
		{Day: employee.Saturday, StartTime: "08:00", EndTime: "12:00"},
	}}
	assert.Equal(t, 26, ExpectedWorkingDays(sixDays, month))

	allOff := employee.Employee{}
	for _, d := range employee.Weekdays {
		allOff.WorkingDays = append(allOff.WorkingDays, employee.WorkingDay{Day: d, IsOff: true})
	}
	assert.Equal(t, 22, ExpectedWorkingDays(allOff, month))
}
