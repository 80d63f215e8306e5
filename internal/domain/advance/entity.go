package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a salary advance repaid in monthly installments.
type Advance struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	StartDate          string          `json:"start_date"`
	Status             Status          `json:"status"`
	Installments       []Installment   `json:"installments,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type Installment struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)
