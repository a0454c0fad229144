// Package engine computes hazard risk scores and mitigation plans.
//
// Every function in this package is pure: inputs are read-only snapshots and
// each call builds a fresh result. Anomalies in the data never fail a
// computation; they narrow the result and are reported as model.Notice values.
package engine

import (
	"github.com/secmon-lab/preparedness/pkg/domain/model"
)

// Snapshot is a read-consistent view of the catalogs used by one computation
type Snapshot struct {
	Location      *model.LocationRiskProfile
	Vulnerability *model.BusinessVulnerabilityProfile
	Multipliers   []*model.Multiplier
	Strategies    []*model.Strategy
}

// Request carries the per-invocation inputs of Compute
type Request struct {
	BusinessType string
	Answers      model.WizardAnswers
	Options      SelectOptions
}

// Compute runs the full pipeline: resolve multipliers, score hazards, select
// strategies and assemble the action plan. The returned plan has no ID or
// timestamp; callers stamp those.
func Compute(snap Snapshot, req Request) *model.RecommendationPlan {
	resolution := ResolveMultipliers(snap.Multipliers, req.Answers)
	scoring := ScoreRisks(snap.Location, snap.Vulnerability, resolution)
	selection := SelectStrategies(scoring.Ranked, req.BusinessType, snap.Strategies, req.Options)
	actions := AssemblePlan(selection.Strategies)

	plan := &model.RecommendationPlan{
		BusinessTypeID:     req.BusinessType,
		RankedRisks:        scoring.Ranked,
		ExcludedHazards:    scoring.Excluded,
		AppliedMultipliers: resolution.Applied,
		SelectedStrategies: selection.Strategies,
		ActionPlan:         actions.Entries,
	}
	if snap.Location != nil {
		plan.AdminUnitID = snap.Location.AdminUnitID
	}
	if plan.RankedRisks == nil {
		plan.RankedRisks = []model.CombinedRiskScore{}
	}

	plan.Notices = append(plan.Notices, resolution.Notices...)
	plan.Notices = append(plan.Notices, scoring.Notices...)
	plan.Notices = append(plan.Notices, selection.Notices...)
	plan.Notices = append(plan.Notices, actions.Notices...)

	return plan
}
