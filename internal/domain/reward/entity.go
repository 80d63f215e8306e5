package reward

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reward is a bonus or deduction tied to one employee and one date.
type Reward struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Type         Type            `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	Date         string          `json:"date"`
	Status       Status          `json:"status"`
	Source       Source          `json:"source"`
	Kind         Kind            `json:"kind,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Type string

const (
	TypeBonus     Type = "bonus"
	TypeDeduction Type = "deduction"
)

type Status string

const (
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

type Source string

const (
	SourceManual    Source = "manual"
	SourceAutomatic Source = "automatic"
)

// Kind names the attendance rule behind an automatic record.
type Kind string

const (
	KindLateFine      Kind = "late-fine"
	KindEarlyExitFine Kind = "early-exit-fine"
	KindOvertimeBonus Kind = "overtime-bonus"
)

// AutomaticKinds lists every kind the attendance evaluator can produce.
var AutomaticKinds = []Kind{KindLateFine, KindEarlyExitFine, KindOvertimeBonus}

func (k Kind) Type() Type {
	if k == KindOvertimeBonus {
		return TypeBonus
	}
	return TypeDeduction
}

func (k Kind) Reason() string {
	switch k {
	case KindLateFine:
		return "Late arrival fine"
	case KindEarlyExitFine:
		return "Early exit fine"
	case KindOvertimeBonus:
		return "Overtime bonus"
	}
	return string(k)
}

// AutomaticID is deterministic so that re-evaluating a day overwrites
// the adjustment instead of adding a second one.
func AutomaticID(employeeID, date string, kind Kind) string {
	return fmt.Sprintf("auto-%s-%s-%s", employeeID, date, kind)
}

// Adjustment is one automatic amount computed from a punch. A zero amount
// cancels a previously stored adjustment of the same kind.
type Adjustment struct {
	Kind   Kind
	Amount decimal.Decimal
}

// Counts reports whether r takes part in payroll sums.
func (r Reward) Counts() bool {
	return r.Status == StatusApproved
}
