package attendance

import (
	"testing"

	"github.com/madar-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func basePolicy() attendance.Policy {
	return attendance.Policy{
		GracePeriodMinutes:   15,
		LateFineAmount:       dec(5000),
		AllowEarlyExit:       false,
		EarlyExitGracePeriod: 5,
		EarlyExitFineAmount:  dec(3000),
		AllowOvertime:        true,
		HourlyRate:           dec(10000),
	}
}

var dayShift = schedule.Resolved{IsWorkingDay: true, ExpectedCheckIn: "08:00", ExpectedCheckOut: "16:00"}

func TestEvaluatePunch(t *testing.T) {
	tests := []struct {
		name      string
		punch     attendance.Punch
		policy    func(p *attendance.Policy)
		status    attendance.Status
		delay     int
		deduction string
		bonus     string
		shift     string
	}{
		{
			name:      "late with overtime",
			punch:     attendance.Punch{CheckIn: "08:20", CheckOut: "17:00"},
			status:    attendance.StatusLate,
			delay:     5,
			deduction: "5000",
			bonus:     "10000",
			shift:     "86667",
		},
		{
			name:      "check-in exactly at grace limit is on time",
			punch:     attendance.Punch{CheckIn: "08:15"},
			status:    attendance.StatusPresent,
			deduction: "0",
			bonus:     "0",
			shift:     "0",
		},
		{
			name:      "one minute past grace limit is late",
			punch:     attendance.Punch{CheckIn: "08:16"},
			status:    attendance.StatusLate,
			delay:     1,
			deduction: "5000",
			bonus:     "0",
			shift:     "0",
		},
		{
			name:      "blank check-in is absent even with a check-out",
			punch:     attendance.Punch{CheckIn: "", CheckOut: "17:00"},
			status:    attendance.StatusAbsent,
			deduction: "0",
			bonus:     "0",
			shift:     "0",
		},
		{
			name:      "placeholder check-in is absent",
			punch:     attendance.Punch{CheckIn: "--:--", CheckOut: "--:--"},
			status:    attendance.StatusAbsent,
			deduction: "0",
			bonus:     "0",
			shift:     "0",
		},
		{
			name:      "early exit overrides late and both fines apply",
			punch:     attendance.Punch{CheckIn: "08:30", CheckOut: "15:00"},
			status:    attendance.StatusEarlyExit,
			delay:     15,
			deduction: "8000",
			bonus:     "0",
			shift:     "65000",
		},
		{
			name:      "allowed early exit carries no fine",
			punch:     attendance.Punch{CheckIn: "08:00", CheckOut: "12:00"},
			policy:    func(p *attendance.Policy) { p.AllowEarlyExit = true },
			status:    attendance.StatusEarlyExit,
			deduction: "0",
			bonus:     "0",
			shift:     "40000",
		},
		{
			name:      "check-out at early-exit grace limit is not early",
			punch:     attendance.Punch{CheckIn: "08:00", CheckOut: "15:55"},
			status:    attendance.StatusPresent,
			deduction: "0",
			bonus:     "0",
			shift:     "79167",
		},
		{
			name:      "one minute before early-exit grace limit is early",
			punch:     attendance.Punch{CheckIn: "08:00", CheckOut: "15:54"},
			status:    attendance.StatusEarlyExit,
			deduction: "3000",
			bonus:     "0",
			shift:     "79000",
		},
		{
			name:      "overtime not allowed",
			punch:     attendance.Punch{CheckIn: "08:00", CheckOut: "18:00"},
			policy:    func(p *attendance.Policy) { p.AllowOvertime = false },
			status:    attendance.StatusPresent,
			deduction: "0",
			bonus:     "0",
			shift:     "100000",
		},
		{
			name:      "missing hourly rate pays nothing",
			punch:     attendance.Punch{CheckIn: "08:00", CheckOut: "18:00"},
			policy:    func(p *attendance.Policy) { p.HourlyRate = decimal.Zero },
			status:    attendance.StatusPresent,
			deduction: "0",
			bonus:     "0",
			shift:     "0",
		},
		{
			name:      "check-out before check-in earns no shift pay",
			punch:     attendance.Punch{CheckIn: "09:00", CheckOut: "08:00"},
			status:    attendance.StatusEarlyExit,
			delay:     45,
			deduction: "8000",
			bonus:     "0",
			shift:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := basePolicy()
			if tt.policy != nil {
				tt.policy(&policy)
			}
			got := EvaluatePunch(tt.punch, dayShift, policy)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.delay, got.DelayMinutes)
			assert.Equal(t, tt.deduction, got.DeductionAmount.String())
			assert.Equal(t, tt.bonus, got.BonusAmount.String())
			assert.Equal(t, tt.shift, got.ShiftSalary.String())
		})
	}
}

func TestEvaluatePunch_UsesResolvedShift(t *testing.T) {
	late := schedule.Resolved{IsWorkingDay: true, ExpectedCheckIn: "10:00", ExpectedCheckOut: "14:00"}
	got := EvaluatePunch(attendance.Punch{CheckIn: "10:10", CheckOut: "14:30"}, late, basePolicy())
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Equal(t, 30, got.OvertimeMinutes)
	assert.Equal(t, "5000", got.BonusAmount.String())
}

func TestAdjustments(t *testing.T) {
	out := EvaluatePunch(attendance.Punch{CheckIn: "08:20", CheckOut: "17:00"}, dayShift, basePolicy())
	adj := Adjustments(out)
	assert.Len(t, adj, 3)
	assert.Equal(t, reward.KindLateFine, adj[0].Kind)
	assert.Equal(t, "5000", adj[0].Amount.String())
	assert.True(t, adj[1].Amount.IsZero())
	assert.Equal(t, "10000", adj[2].Amount.String())
}
