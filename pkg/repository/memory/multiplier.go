package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

type multiplierRepository struct {
	mu          sync.RWMutex
	multipliers map[string]*model.Multiplier
}

func newMultiplierRepository() *multiplierRepository {
	return &multiplierRepository{
		multipliers: make(map[string]*model.Multiplier),
	}
}

func (r *multiplierRepository) ListByCharacteristic(ctx context.Context, characteristicType types.CharacteristicType) ([]*model.Multiplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*model.Multiplier
	for _, m := range r.multipliers {
		if m.CharacteristicType == characteristicType {
			found = append(found, m.Copy())
		}
	}
	sortMultipliers(found)
	return found, nil
}

func (r *multiplierRepository) List(ctx context.Context) ([]*model.Multiplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.Multiplier, 0, len(r.multipliers))
	for _, m := range r.multipliers {
		all = append(all, m.Copy())
	}
	sortMultipliers(all)
	return all, nil
}

func (r *multiplierRepository) Put(ctx context.Context, multiplier *model.Multiplier) error {
	if multiplier == nil || multiplier.ID == "" {
		return goerr.Wrap(ErrInvalidArgument, "multiplier ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.multipliers[multiplier.ID] = multiplier.Copy()
	return nil
}

func sortMultipliers(ms []*model.Multiplier) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].CharacteristicType != ms[j].CharacteristicType {
			return ms[i].CharacteristicType < ms[j].CharacteristicType
		}
		if ms[i].Priority != ms[j].Priority {
			return ms[i].Priority < ms[j].Priority
		}
		return ms[i].ID < ms[j].ID
	})
}
