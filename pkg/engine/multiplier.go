package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

// NeutralFactor is applied when an answer is missing or has no mapped option
const NeutralFactor = 1.0

// ResolveMultipliers converts wizard answers into per-hazard scaling factors.
//
// For each characteristic type, only one active multiplier is used: the one with
// the lowest priority, ties broken by ascending ID. Factors of different
// characteristics affecting the same hazard multiply. The result does not
// depend on the order of catalog or answers.
func ResolveMultipliers(catalog []*model.Multiplier, answers model.WizardAnswers) *model.MultiplierResolution {
	res := &model.MultiplierResolution{
		Factors: make(map[types.Hazard]float64),
	}

	byType := make(map[types.CharacteristicType][]*model.Multiplier)
	for _, m := range catalog {
		if m == nil {
			continue
		}
		byType[m.CharacteristicType] = append(byType[m.CharacteristicType], m)
	}

	charTypes := make([]types.CharacteristicType, 0, len(answers))
	for ct := range answers {
		charTypes = append(charTypes, ct)
	}
	sort.Slice(charTypes, func(i, j int) bool { return charTypes[i] < charTypes[j] })

	for _, ct := range charTypes {
		if _, ok := byType[ct]; !ok {
			res.Notices = append(res.Notices, model.Notice{
				Kind:    types.NoticeUnknownCharacteristic,
				Subject: ct.String(),
				Message: "no multiplier is defined for the characteristic type; answer ignored",
			})
		}
	}

	typesWithMultipliers := make([]types.CharacteristicType, 0, len(byType))
	for ct := range byType {
		typesWithMultipliers = append(typesWithMultipliers, ct)
	}
	sort.Slice(typesWithMultipliers, func(i, j int) bool { return typesWithMultipliers[i] < typesWithMultipliers[j] })

	for _, ct := range typesWithMultipliers {
		winner, tied := SelectActiveMultiplier(byType[ct])
		if winner == nil {
			if _, answered := answers[ct]; answered {
				res.Notices = append(res.Notices, model.Notice{
					Kind:    types.NoticeUnknownCharacteristic,
					Subject: ct.String(),
					Message: "no active multiplier for the characteristic type; answer ignored",
				})
			}
			continue
		}
		if len(tied) > 0 {
			res.Notices = append(res.Notices, model.Notice{
				Kind:    types.NoticeUnresolvableMultiplier,
				Subject: ct.String(),
				Message: fmt.Sprintf("%d active multipliers share priority %d; %q selected by ID order", len(tied)+1, winner.Priority, winner.ID),
				Values: map[string]any{
					"selected": winner.ID,
					"tied":     tied,
				},
			})
		}

		answer, answered := answers[ct]
		factor := NeutralFactor
		if answered {
			if f, ok := winner.AnswerOptions[answer]; ok {
				factor = f
			}
		}

		if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
			res.Notices = append(res.Notices, model.Notice{
				Kind:    types.NoticeInputData,
				Subject: winner.ID,
				Message: "multiplier factor is not a finite non-negative number; neutral factor used",
				Values:  map[string]any{"answer": answer, "factor": fmt.Sprint(factor)},
			})
			factor = NeutralFactor
		}

		hazards := uniqueHazards(winner.AppliesToHazards)
		for _, h := range hazards {
			current, ok := res.Factors[h]
			if !ok {
				current = NeutralFactor
			}
			res.Factors[h] = current * factor
		}

		if answered {
			res.Applied = append(res.Applied, model.AppliedMultiplier{
				CharacteristicType: ct,
				MultiplierID:       winner.ID,
				Answer:             answer,
				Factor:             factor,
				Hazards:            hazards,
			})
		}
	}

	return res
}

// SelectActiveMultiplier returns the winning active multiplier among
// candidates of one characteristic type and the IDs of other active
// multipliers tied with it on priority. It returns nil if none is active.
func SelectActiveMultiplier(candidates []*model.Multiplier) (*model.Multiplier, []string) {
	active := make([]*model.Multiplier, 0, len(candidates))
	for _, m := range candidates {
		if m.IsActive {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID < active[j].ID
	})

	winner := active[0]
	var tied []string
	for _, m := range active[1:] {
		if m.Priority != winner.Priority {
			break
		}
		tied = append(tied, m.ID)
	}
	return winner, tied
}

func uniqueHazards(hazards []types.Hazard) []types.Hazard {
	seen := make(map[types.Hazard]struct{}, len(hazards))
	result := make([]types.Hazard, 0, len(hazards))
	for _, h := range hazards {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
