package reward

import "context"

type RewardRepository interface {
	// Upsert replaces any record with the same ID
	Upsert(ctx context.Context, r Reward) (Reward, error)
	GetByID(ctx context.Context, id string) (Reward, error)
	List(ctx context.Context, filter RewardFilter) ([]Reward, error)
}
