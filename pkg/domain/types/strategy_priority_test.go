package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

func TestStrategyPriority_Rank(t *testing.T) {
	tests := []struct {
		priority types.StrategyPriority
		want     int
	}{
		{types.StrategyPriorityCritical, 4},
		{types.StrategyPriorityHigh, 3},
		{types.StrategyPriorityMedium, 2},
		{types.StrategyPriorityLow, 1},
		{types.StrategyPriority("urgent"), 0},
		{types.StrategyPriority(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			gt.Number(t, tt.priority.Rank()).Equal(tt.want)
		})
	}
}

func TestAllStrategyPriorities_Descending(t *testing.T) {
	all := types.AllStrategyPriorities()
	for i := 1; i < len(all); i++ {
		gt.Bool(t, all[i-1].Rank() > all[i].Rank()).True()
	}
}

func TestParseStrategyPriority(t *testing.T) {
	p, err := types.ParseStrategyPriority("high")
	gt.NoError(t, err).Required()
	gt.Value(t, p).Equal(types.StrategyPriorityHigh)

	_, err = types.ParseStrategyPriority("urgent")
	gt.Value(t, err).NotNil()
}
