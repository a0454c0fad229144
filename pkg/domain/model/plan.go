package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

// PlanID identifies one computed recommendation plan
type PlanID string

// NewPlanID generates a time-ordered plan identifier
func NewPlanID() PlanID {
	return PlanID(uuid.Must(uuid.NewV7()).String())
}

// SelectedStrategy is a strategy chosen for the plan along with the hazards
// that triggered its inclusion
type SelectedStrategy struct {
	Strategy       *Strategy
	Rank           int
	MatchedHazards []types.Hazard
	MaxScore       float64
}

// StrategySelection is the output of strategy selection
type StrategySelection struct {
	Strategies []SelectedStrategy
	Notices    []Notice
}

// PlanEntry is one action step placed on the implementation timeline
type PlanEntry struct {
	Phase        types.CanonicalPhase
	SourcePhase  types.Phase
	StrategyID   StrategyID
	StrategyRank int
	Step         ActionStep
}

// ActionPlanResult is the output of action plan assembly
type ActionPlanResult struct {
	Entries []PlanEntry
	Notices []Notice
}

// RecommendationPlan is the full result of one recommendation computation
type RecommendationPlan struct {
	ID                 PlanID
	AdminUnitID        string
	BusinessTypeID     string
	RankedRisks        []CombinedRiskScore
	ExcludedHazards    []types.Hazard
	AppliedMultipliers []AppliedMultiplier
	SelectedStrategies []SelectedStrategy
	ActionPlan         []PlanEntry
	Notices            []Notice
	GeneratedAt        time.Time
}

// HasWarnings reports whether any notice should be shown to the end user
func (p *RecommendationPlan) HasWarnings() bool {
	for _, n := range p.Notices {
		if n.Kind.IsWarning() {
			return true
		}
	}
	return false
}

// NoticesOf returns notices of the given kind
func (p *RecommendationPlan) NoticesOf(kind types.NoticeKind) []Notice {
	var found []Notice
	for _, n := range p.Notices {
		if n.Kind == kind {
			found = append(found, n)
		}
	}
	return found
}
