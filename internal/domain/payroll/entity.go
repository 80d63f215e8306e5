package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate is the monthly derivation for one employee.
type Aggregate struct {
	BaseSalary          decimal.Decimal `json:"base_salary"`
	ExpectedWorkingDays int             `json:"expected_working_days"`
	PresentDays         int             `json:"present_days"`
	AbsentDays          int             `json:"absent_days"`
	AutoFines           decimal.Decimal `json:"auto_fines"`
	AutoBonus           decimal.Decimal `json:"auto_bonus"`
	ManualBonus         decimal.Decimal `json:"manual_bonus"`
	ManualDeduction     decimal.Decimal `json:"manual_deduction"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	EarnedSalary        decimal.Decimal `json:"earned_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`
}

// Entry is the ledger row of one employee for one month.
// While pending review its amounts follow the source records; once paid
// they stay as they were at payment time.
type Entry struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EmployeeCode string `json:"employee_code"`
	BranchID     string `json:"branch_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Month        string `json:"month"`

	Aggregate

	Status      Status     `json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	PaidBy      string     `json:"paid_by,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EntryID is the storage key of the (employee, month) pair.
func EntryID(employeeID, month string) string {
	return fmt.Sprintf("pay-%s-%s", employeeID, month)
}

func (e Entry) IsPaid() bool {
	return e.Status == StatusPaid
}

type Status string

const (
	StatusPendingReview Status = "pending-review"
	StatusPaid          Status = "paid"
)

var StatusValues = []string{
	string(StatusPendingReview),
	string(StatusPaid),
}
