package payroll

import (
	"github.com/madar-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollFilter struct {
	Month        string `validate:"required,month"`
	BranchID     string
	DepartmentID string
	Status       string `validate:"omitempty,oneof=pending-review paid"`
	Search       string
}

func (f *PayrollFilter) Validate() error {
	return validator.Struct(f).OrNil()
}

type UpdateNotesRequest struct {
	ID    string `json:"-"`
	Notes string `json:"notes" validate:"max=1000"`
}

func (r *UpdateNotesRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type SummaryResponse struct {
	Month        string          `json:"month"`
	Employees    int             `json:"employees"`
	PaidCount    int             `json:"paid_count"`
	PendingCount int             `json:"pending_count"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
}

type MonthResponse struct {
	Month   string          `json:"month"`
	Entries []Entry         `json:"entries"`
	Summary SummaryResponse `json:"summary"`
}

type PayAllResponse struct {
	Month string  `json:"month"`
	Paid  []Entry `json:"paid"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
