package evaluation

import "context"

type CriteriaRepository interface {
	Upsert(ctx context.Context, c Criteria) (Criteria, error)

	// Update replaces an existing criterion, keeping its creation time
	Update(ctx context.Context, c Criteria) (Criteria, error)
	List(ctx context.Context) ([]Criteria, error)
	Delete(ctx context.Context, id string) error
}

type EvaluationRepository interface {
	Upsert(ctx context.Context, e Evaluation) (Evaluation, error)
	List(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)
}
