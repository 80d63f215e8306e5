package reward

import (
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRewardRequest struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	Type       string          `json:"type" validate:"required,oneof=bonus deduction"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason" validate:"required,max=500"`
	Date       string          `json:"date" validate:"required,date"`
}

func (r *CreateRewardRequest) Validate() error {
	errs := validator.Struct(r)
	if !r.Amount.IsPositive() {
		errs.Add("amount", "must be greater than zero")
	}
	return errs.OrNil()
}

type RewardFilter struct {
	EmployeeID string
	Type       string
	Status     string
	Source     string
	From       string
	To         string
	Month      string
	Search     string
}

type ListRewardResponse struct {
	Rewards        []Reward        `json:"rewards"`
	TotalBonus     decimal.Decimal `json:"total_bonus"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
}
