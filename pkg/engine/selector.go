package engine

import (
	"fmt"
	"sort"

	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

// SelectOptions bounds strategy selection
type SelectOptions struct {
	// RecommendedCap limits recommended and optional strategies. Essential
	// strategies are never capped. Negative values are treated as zero.
	RecommendedCap int
	// CoverageTopN limits the coverage check to the N highest ranked hazards; 0 checks all
	CoverageTopN int
}

type candidate struct {
	strategy *model.Strategy
	matched  []types.Hazard
	maxScore float64
}

// SelectStrategies picks mitigation strategies for the ranked hazards of one
// business type.
//
// Every matching essential strategy is included. Recommended and optional
// strategies compete on (max matched score, matched count, priority, ID) and
// are truncated to RecommendedCap. Each strategy appears once; when an ID
// repeats among the entries for the business type, the first is kept.
func SelectStrategies(ranked []model.CombinedRiskScore, businessType string, catalog []*model.Strategy, opts SelectOptions) *model.StrategySelection {
	sel := &model.StrategySelection{
		Strategies: []model.SelectedStrategy{},
	}
	if len(ranked) == 0 {
		return sel
	}

	scores := make(map[types.Hazard]model.CombinedRiskScore, len(ranked))
	for _, r := range ranked {
		if r.CombinedScore > 0 {
			scores[r.Hazard] = r
		}
	}

	covered := make(map[types.Hazard]bool, len(scores))
	seen := make(map[model.StrategyID]struct{}, len(catalog))
	var essentials, others []candidate

	for _, s := range catalog {
		if s == nil {
			continue
		}
		if !s.AppliesToBusiness(businessType) {
			continue
		}

		// duplicates are resolved among entries for this business type only
		if _, dup := seen[s.ID]; dup {
			sel.Notices = append(sel.Notices, model.Notice{
				Kind:    types.NoticeDuplicateStrategy,
				Subject: s.ID.String(),
				Message: "strategy ID appears more than once in the catalog; first entry kept",
			})
			continue
		}
		seen[s.ID] = struct{}{}

		matched := matchHazards(s, scores)
		if len(matched) == 0 {
			continue
		}

		if !s.SelectionTier.IsValid() {
			sel.Notices = append(sel.Notices, model.Notice{
				Kind:    types.NoticeUnknownValue,
				Subject: s.ID.String(),
				Message: fmt.Sprintf("unknown selection tier %q; strategy excluded", s.SelectionTier),
			})
			continue
		}

		for _, h := range matched {
			covered[h] = true
		}

		c := candidate{strategy: s, matched: matched, maxScore: scores[matched[0]].CombinedScore}
		if s.SelectionTier == types.SelectionTierEssential {
			essentials = append(essentials, c)
		} else {
			others = append(others, c)
		}
	}

	sortCandidates(essentials)
	sortCandidates(others)
	matchedAny := len(essentials)+len(others) > 0

	limit := opts.RecommendedCap
	if limit < 0 {
		limit = 0
	}
	if len(others) > limit {
		others = others[:limit]
	}

	for _, c := range append(essentials, others...) {
		sel.Strategies = append(sel.Strategies, model.SelectedStrategy{
			Strategy:       c.strategy,
			Rank:           len(sel.Strategies) + 1,
			MatchedHazards: c.matched,
			MaxScore:       c.maxScore,
		})
	}

	if !matchedAny {
		sel.Notices = append(sel.Notices, model.Notice{
			Kind:    types.NoticeEmptyCatalogResult,
			Subject: businessType,
			Message: "no strategy in the catalog matched any scored hazard",
		})
	}

	checked := ranked
	if opts.CoverageTopN > 0 && len(checked) > opts.CoverageTopN {
		checked = checked[:opts.CoverageTopN]
	}
	for _, r := range checked {
		if r.CombinedScore <= 0 || covered[r.Hazard] {
			continue
		}
		sel.Notices = append(sel.Notices, model.Notice{
			Kind:    types.NoticeMissingHazardCoverage,
			Subject: r.Hazard.String(),
			Message: "no recommended strategy found for the hazard",
			Values:  map[string]any{"rank": r.Rank, "score": r.CombinedScore},
		})
	}

	return sel
}

// matchHazards returns the scored hazards a strategy addresses, highest score first
func matchHazards(s *model.Strategy, scores map[types.Hazard]model.CombinedRiskScore) []types.Hazard {
	var matched []types.Hazard
	seen := make(map[types.Hazard]struct{}, len(s.ApplicableRisks))
	for _, h := range s.ApplicableRisks {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		if _, ok := scores[h]; ok {
			matched = append(matched, h)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := scores[matched[i]], scores[matched[j]]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		if a.ImpactSeverity != b.ImpactSeverity {
			return a.ImpactSeverity > b.ImpactSeverity
		}
		return a.Hazard < b.Hazard
	})
	return matched
}

func sortCandidates(cs []candidate) {
	sort.Slice(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.maxScore != b.maxScore {
			return a.maxScore > b.maxScore
		}
		if len(a.matched) != len(b.matched) {
			return len(a.matched) > len(b.matched)
		}
		if pa, pb := a.strategy.Priority.Rank(), b.strategy.Priority.Rank(); pa != pb {
			return pa > pb
		}
		return a.strategy.ID < b.strategy.ID
	})
}
