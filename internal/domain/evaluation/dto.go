package evaluation

import "github.com/madar-hris/hrms-backend-go/internal/pkg/validator"

type CreateCriteriaRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description" validate:"max=500"`
	Weight       float64 `json:"weight" validate:"gt=0,lte=100"`
	BranchID     string  `json:"branch_id,omitempty"`
	DepartmentID string  `json:"department_id,omitempty"`
}

func (r *CreateCriteriaRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

// UpdateCriteriaRequest rewrites a criterion. Weights only affect evaluations
// scored after the change.
type UpdateCriteriaRequest struct {
	ID string `json:"-"`
	CreateCriteriaRequest
}

func (r *UpdateCriteriaRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type ScoreRequest struct {
	CriteriaID string  `json:"criteria_id" validate:"required"`
	Score      float64 `json:"score" validate:"gte=0,lte=10"`
}

type CreateEvaluationRequest struct {
	EmployeeID string         `json:"employee_id" validate:"required"`
	Date       string         `json:"date" validate:"omitempty,date"`
	Scores     []ScoreRequest `json:"scores" validate:"required,min=1,dive"`
	Comments   string         `json:"comments" validate:"max=2000"`
}

func (r *CreateEvaluationRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type EvaluationFilter struct {
	EmployeeID   string
	BranchID     string
	DepartmentID string
	From         string
	To           string
}

type ReportRow struct {
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    string             `json:"employee_name"`
	EvaluationCount int                `json:"evaluation_count"`
	AverageTotal    float64            `json:"average_total"`
	AverageCriteria map[string]float64 `json:"average_criteria"`
	LatestDate      string             `json:"latest_date"`
}
