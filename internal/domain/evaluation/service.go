package evaluation

import "context"

type EvaluationService interface {
	CreateCriteria(ctx context.Context, req CreateCriteriaRequest) (Criteria, error)
	UpdateCriteria(ctx context.Context, req UpdateCriteriaRequest) (Criteria, error)
	ListCriteria(ctx context.Context) ([]Criteria, error)
	DeleteCriteria(ctx context.Context, id string) error

	// CreateEvaluation stores scores and their weighted total
	CreateEvaluation(ctx context.Context, req CreateEvaluationRequest) (Evaluation, error)
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)

	// Report averages the evaluations of each employee
	Report(ctx context.Context, filter EvaluationFilter) ([]ReportRow, error)
}
