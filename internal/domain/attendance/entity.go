package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is the persisted record of one employee on one date.
type Attendance struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	Date            string          `json:"date"`
	CheckIn         string          `json:"check_in"`
	CheckOut        string          `json:"check_out"`
	Status          Status          `json:"status"`
	DelayMinutes    int             `json:"delay_minutes"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	BonusAmount     decimal.Decimal `json:"bonus_amount"`
	ShiftSalary     decimal.Decimal `json:"shift_salary"`
	BranchID        string          `json:"branch_id,omitempty"`
	DepartmentID    string          `json:"department_id,omitempty"`
	AutoClosed      bool            `json:"auto_closed,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// RecordID is the storage key of the (employee, date) pair.
func RecordID(employeeID, date string) string {
	return fmt.Sprintf("att-%s-%s", employeeID, date)
}

type Status string

const (
	StatusPresent   Status = "present"
	StatusLate      Status = "late"
	StatusAbsent    Status = "absent"
	StatusOnLeave   Status = "on-leave"
	StatusEarlyExit Status = "early-exit"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusAbsent),
	string(StatusOnLeave),
	string(StatusEarlyExit),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusOnLeave, StatusEarlyExit:
		return true
	}
	return false
}

// Attended reports statuses that count as a paid presence day.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Punch is the raw input of one day: either side may be blank.
type Punch struct {
	CheckIn  string
	CheckOut string
}

// Policy carries the employee settings the evaluator needs.
type Policy struct {
	GracePeriodMinutes   int
	LateFineAmount       decimal.Decimal
	AllowEarlyExit       bool
	EarlyExitGracePeriod int
	EarlyExitFineAmount  decimal.Decimal
	AllowOvertime        bool
	HourlyRate           decimal.Decimal
}

// Outcome is the derived part of an attendance record.
type Outcome struct {
	Status          Status
	DelayMinutes    int
	OvertimeMinutes int
	LateFine        decimal.Decimal
	EarlyExitFine   decimal.Decimal
	DeductionAmount decimal.Decimal
	BonusAmount     decimal.Decimal
	ShiftSalary     decimal.Decimal
}

// View is a row of the daily sheet. Virtual rows are synthesized for
// employees without a saved record and are never persisted.
type View struct {
	Attendance
	Virtual    bool `json:"virtual"`
	WorkingDay bool `json:"working_day"`
}
