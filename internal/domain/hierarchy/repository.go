package hierarchy

import "context"

type HierarchyRepository interface {
	Create(ctx context.Context, branch Branch) (Branch, error)

	// Update applies fn to the stored branch under the store lock; an error
	// from fn leaves the branch untouched
	Update(ctx context.Context, id string, fn func(*Branch) error) (Branch, error)

	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Delete(ctx context.Context, id string) error
}
