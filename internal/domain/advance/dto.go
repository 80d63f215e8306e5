package advance

import (
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	EmployeeID         string          `json:"employee_id" validate:"required"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	StartDate          string          `json:"start_date" validate:"required,date"`
}

func (r *CreateAdvanceRequest) Validate() error {
	errs := validator.Struct(r)
	if !r.TotalAmount.IsPositive() {
		errs.Add("total_amount", "must be greater than zero")
	}
	if !r.MonthlyInstallment.IsPositive() {
		errs.Add("monthly_installment", "must be greater than zero")
	} else if r.MonthlyInstallment.GreaterThan(r.TotalAmount) {
		errs.Add("monthly_installment", "must not exceed total_amount")
	}
	return errs.OrNil()
}

// InstallmentRequest records a payment. A zero amount means one monthly installment.
type InstallmentRequest struct {
	ID     string          `json:"-"`
	Date   string          `json:"date" validate:"required,date"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *InstallmentRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Amount.IsNegative() {
		errs.Add("amount", "must be non-negative")
	}
	return errs.OrNil()
}

type AdvanceFilter struct {
	EmployeeID string
	Status     string
}
