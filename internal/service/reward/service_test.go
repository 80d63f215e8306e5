package reward

import (
	"context"
	"testing"

	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (reward.RewardService, reward.RewardRepository) {
	t.Helper()
	ctx := context.Background()
	store, err := state.Open(ctx, storage.NewMemoryStorage(), nil)
	require.NoError(t, err)

	employees := state.NewEmployeeRepository(store)
	_, err = employees.Create(ctx, employee.Employee{ID: "e1", Code: "EMP-001", Name: "Omar"})
	require.NoError(t, err)

	rewards := state.NewRewardRepository(store)
	return NewRewardService(rewards, employees), rewards
}

func TestRewardService_CreateAndCancel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	bonus, err := svc.CreateReward(ctx, reward.CreateRewardRequest{
		EmployeeID: "e1", Type: "bonus", Amount: decimal.NewFromInt(50000), Reason: "Project delivery", Date: "2024-05-10",
	})
	require.NoError(t, err)
	assert.Equal(t, reward.SourceManual, bonus.Source)
	assert.Equal(t, reward.StatusApproved, bonus.Status)
	assert.Equal(t, "Omar", bonus.EmployeeName)
	assert.Equal(t, SystemActor, bonus.CreatedBy)

	_, err = svc.CreateReward(ctx, reward.CreateRewardRequest{
		EmployeeID: "e1", Type: "deduction", Amount: decimal.NewFromInt(20000), Reason: "Damaged equipment", Date: "2024-05-11",
	})
	require.NoError(t, err)

	list, err := svc.ListRewards(ctx, reward.RewardFilter{EmployeeID: "e1", Month: "2024-05"})
	require.NoError(t, err)
	assert.Len(t, list.Rewards, 2)
	assert.Equal(t, "50000", list.TotalBonus.String())
	assert.Equal(t, "20000", list.TotalDeduction.String())

	cancelled, err := svc.CancelReward(ctx, bonus.ID)
	require.NoError(t, err)
	assert.Equal(t, reward.StatusCancelled, cancelled.Status)

	_, err = svc.CancelReward(ctx, bonus.ID)
	assert.ErrorIs(t, err, reward.ErrRewardAlreadyCancelled)

	list, err = svc.ListRewards(ctx, reward.RewardFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.True(t, list.TotalBonus.IsZero())
}

func TestRewardService_CreateReward_Invalid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  reward.CreateRewardRequest
	}{
		{"zero amount", reward.CreateRewardRequest{EmployeeID: "e1", Type: "bonus", Reason: "x", Date: "2024-05-10"}},
		{"unknown type", reward.CreateRewardRequest{EmployeeID: "e1", Type: "gift", Amount: decimal.NewFromInt(1), Reason: "x", Date: "2024-05-10"}},
		{"bad date", reward.CreateRewardRequest{EmployeeID: "e1", Type: "bonus", Amount: decimal.NewFromInt(1), Reason: "x", Date: "10/05/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReward(ctx, tt.req)
			assert.Error(t, err)
		})
	}

	_, err := svc.CreateReward(ctx, reward.CreateRewardRequest{
		EmployeeID: "missing", Type: "bonus", Amount: decimal.NewFromInt(1), Reason: "x", Date: "2024-05-10",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRewardService_SyncAutomatic(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	lateID := reward.AutomaticID("e1", "2024-05-02", reward.KindLateFine)

	err := svc.SyncAutomatic(ctx, "e1", "Omar", "2024-05-02", []reward.Adjustment{
		{Kind: reward.KindLateFine, Amount: decimal.NewFromInt(5000)},
		{Kind: reward.KindEarlyExitFine, Amount: decimal.Zero},
		{Kind: reward.KindOvertimeBonus, Amount: decimal.Zero},
	})
	require.NoError(t, err)

	late, err := repo.GetByID(ctx, lateID)
	require.NoError(t, err)
	assert.Equal(t, reward.TypeDeduction, late.Type)
	assert.Equal(t, reward.SourceAutomatic, late.Source)
	assert.Equal(t, "auto-e1-2024-05-02-late-fine", late.ID)

	_, err = repo.GetByID(ctx, reward.AutomaticID("e1", "2024-05-02", reward.KindOvertimeBonus))
	assert.ErrorIs(t, err, reward.ErrRewardNotFound)

	// same day evaluated again: no duplicate, amount replaced
	err = svc.SyncAutomatic(ctx, "e1", "Omar", "2024-05-02", []reward.Adjustment{
		{Kind: reward.KindLateFine, Amount: decimal.NewFromInt(7000)},
	})
	require.NoError(t, err)
	list, err := svc.ListRewards(ctx, reward.RewardFilter{EmployeeID: "e1", Source: "automatic"})
	require.NoError(t, err)
	require.Len(t, list.Rewards, 1)
	assert.Equal(t, "7000", list.Rewards[0].Amount.String())

	// corrected punch removes the fine
	err = svc.SyncAutomatic(ctx, "e1", "Omar", "2024-05-02", []reward.Adjustment{
		{Kind: reward.KindLateFine, Amount: decimal.Zero},
	})
	require.NoError(t, err)
	late, err = repo.GetByID(ctx, lateID)
	require.NoError(t, err)
	assert.Equal(t, reward.StatusCancelled, late.Status)

	_, err = svc.CancelReward(ctx, lateID)
	assert.ErrorIs(t, err, reward.ErrAutomaticReadOnly)
}
