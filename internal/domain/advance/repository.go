package advance

import "context"

type AdvanceRepository interface {
	Upsert(ctx context.Context, a Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	List(ctx context.Context, filter AdvanceFilter) ([]Advance, error)
}
