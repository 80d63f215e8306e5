package reward

import "context"

type RewardService interface {
	CreateReward(ctx context.Context, req CreateRewardRequest) (Reward, error)
	CancelReward(ctx context.Context, id string) (Reward, error)
	ListRewards(ctx context.Context, filter RewardFilter) (ListRewardResponse, error)

	// SyncAutomatic writes the adjustments of one attendance day
	SyncAutomatic(ctx context.Context, employeeID, employeeName, date string, adjustments []Adjustment) error
}
