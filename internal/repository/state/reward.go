package state

import (
	"context"
	"sort"
	"strings"

	"github.com/madar-hris/hrms-backend-go/internal/domain/reward"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/timeutil"
)

type RewardRepository struct {
	store *Store
}

func NewRewardRepository(store *Store) reward.RewardRepository {
	return &RewardRepository{store: store}
}

func (r *RewardRepository) Upsert(ctx context.Context, rw reward.Reward) (reward.Reward, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	next := replace(s.rewards, rw, func(x reward.Reward) bool { return x.ID == rw.ID })
	if err := commit(ctx, s, KeyRewards, &s.rewards, next); err != nil {
		return reward.Reward{}, err
	}
	s.notify("rewards", "saved", rw.ID)
	return rw, nil
}

func (r *RewardRepository) GetByID(ctx context.Context, id string) (reward.Reward, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rw, ok := find(r.store.rewards, func(x reward.Reward) bool { return x.ID == id })
	if !ok {
		return reward.Reward{}, reward.ErrRewardNotFound
	}
	return rw, nil
}

func (r *RewardRepository) List(ctx context.Context, f reward.RewardFilter) ([]reward.Reward, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := filter(r.store.rewards, func(x reward.Reward) bool {
		if f.EmployeeID != "" && x.EmployeeID != f.EmployeeID {
			return false
		}
		if f.Type != "" && string(x.Type) != f.Type {
			return false
		}
		if f.Status != "" && string(x.Status) != f.Status {
			return false
		}
		if f.Source != "" && string(x.Source) != f.Source {
			return false
		}
		if f.Month != "" && !timeutil.InMonth(x.Date, f.Month) {
			return false
		}
		if !timeutil.InRange(x.Date, f.From, f.To) {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(x.EmployeeName), search) &&
			!strings.Contains(strings.ToLower(x.Reason), search) {
			return false
		}
		return true
	})

	// newest first
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
