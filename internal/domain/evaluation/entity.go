package evaluation

import "time"

type Criteria struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Weight       float64   `json:"weight"`
	BranchID     string    `json:"branch_id,omitempty"`
	DepartmentID string    `json:"department_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Score struct {
	CriteriaID string  `json:"criteria_id"`
	Score      float64 `json:"score"`
}

type Evaluation struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EvaluatorID   string    `json:"evaluator_id"`
	EvaluatorName string    `json:"evaluator_name"`
	Date          string    `json:"date"`
	Scores        []Score   `json:"scores"`
	TotalScore    float64   `json:"total_score"`
	Comments      string    `json:"comments"`
	BranchID      string    `json:"branch_id,omitempty"`
	DepartmentID  string    `json:"department_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
