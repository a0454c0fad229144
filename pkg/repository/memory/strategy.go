package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
)

// strategyRepository keeps strategies in insertion order. Putting an existing
// ID replaces it in place.
type strategyRepository struct {
	mu         sync.RWMutex
	strategies []*model.Strategy
	index      map[model.StrategyID]int
}

func newStrategyRepository() *strategyRepository {
	return &strategyRepository{
		index: make(map[model.StrategyID]int),
	}
}

func (r *strategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]*model.Strategy, 0, len(r.strategies))
	for _, s := range r.strategies {
		strategies = append(strategies, s.Copy())
	}
	return strategies, nil
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if strategy == nil || strategy.ID == "" {
		return goerr.Wrap(ErrInvalidArgument, "strategy ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, exists := r.index[strategy.ID]; exists {
		r.strategies[i] = strategy.Copy()
		return nil
	}
	r.index[strategy.ID] = len(r.strategies)
	r.strategies = append(r.strategies, strategy.Copy())
	return nil
}
