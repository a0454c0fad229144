package engine

import (
	"fmt"
	"sort"

	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

// AssemblePlan flattens the action steps of selected strategies into one
// timeline ordered by canonical phase, then strategy rank, then step sort
// order. Within a phase, the steps of one strategy are never interleaved with
// another strategy's steps.
func AssemblePlan(selected []model.SelectedStrategy) *model.ActionPlanResult {
	type keyed struct {
		entry   model.PlanEntry
		ordinal int
		index   int
	}

	result := &model.ActionPlanResult{
		Entries: []model.PlanEntry{},
	}

	var items []keyed
	for _, sel := range selected {
		if sel.Strategy == nil {
			continue
		}
		for _, step := range sel.Strategy.ActionSteps {
			phase, err := step.Phase.Normalize()
			if err != nil {
				result.Notices = append(result.Notices, model.Notice{
					Kind:    types.NoticeUnknownValue,
					Subject: sel.Strategy.ID.String(),
					Message: fmt.Sprintf("action step %q has unknown phase %q; step excluded", step.ID, step.Phase),
				})
				continue
			}

			if step.StrategyID == "" {
				step.StrategyID = sel.Strategy.ID
			}
			items = append(items, keyed{
				entry: model.PlanEntry{
					Phase:        phase,
					SourcePhase:  step.Phase,
					StrategyID:   sel.Strategy.ID,
					StrategyRank: sel.Rank,
					Step:         step,
				},
				ordinal: phase.Ordinal(),
				index:   len(items),
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ordinal != b.ordinal {
			return a.ordinal < b.ordinal
		}
		if a.entry.StrategyRank != b.entry.StrategyRank {
			return a.entry.StrategyRank < b.entry.StrategyRank
		}
		if a.entry.Step.SortOrder != b.entry.Step.SortOrder {
			return a.entry.Step.SortOrder < b.entry.Step.SortOrder
		}
		return a.index < b.index
	})

	for _, it := range items {
		result.Entries = append(result.Entries, it.entry)
	}
	return result
}
