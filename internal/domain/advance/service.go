package advance

import "context"

type AdvanceService interface {
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (Advance, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) ([]Advance, error)
	RejectAdvance(ctx context.Context, id string) (Advance, error)

	// RecordInstallment deducts a payment; the advance completes at zero remaining
	RecordInstallment(ctx context.Context, req InstallmentRequest) (Advance, error)
}
