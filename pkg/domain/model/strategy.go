package model

import "github.com/secmon-lab/preparedness/pkg/domain/types"

// AllBusinessesWildcard in ApplicableBusinessTypes makes a strategy apply to every business type
const AllBusinessesWildcard = "all_businesses"

// StrategyID is the catalog identifier of a mitigation strategy
type StrategyID string

// String returns the string representation of StrategyID
func (id StrategyID) String() string {
	return string(id)
}

// Strategy is a mitigation strategy from the catalog
type Strategy struct {
	ID                      StrategyID
	ApplicableRisks         []types.Hazard
	ApplicableBusinessTypes []string
	SelectionTier           types.SelectionTier
	Priority                types.StrategyPriority
	ActionSteps             []ActionStep
	Title                   LocalizedText
	Description             LocalizedText
}

// ActionStep is one implementation task of a strategy
type ActionStep struct {
	ID          string
	StrategyID  StrategyID
	Phase       types.Phase
	SortOrder   int
	Title       LocalizedText
	Description LocalizedText
}

// AppliesToBusiness reports whether the strategy targets businessType
func (s *Strategy) AppliesToBusiness(businessType string) bool {
	for _, bt := range s.ApplicableBusinessTypes {
		if bt == businessType || bt == AllBusinessesWildcard {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the strategy
func (s *Strategy) Copy() *Strategy {
	if s == nil {
		return nil
	}
	steps := make([]ActionStep, len(s.ActionSteps))
	for i, step := range s.ActionSteps {
		steps[i] = step
		steps[i].Title = step.Title.Copy()
		steps[i].Description = step.Description.Copy()
	}
	return &Strategy{
		ID:                      s.ID,
		ApplicableRisks:         append([]types.Hazard(nil), s.ApplicableRisks...),
		ApplicableBusinessTypes: append([]string(nil), s.ApplicableBusinessTypes...),
		SelectionTier:           s.SelectionTier,
		Priority:                s.Priority,
		ActionSteps:             steps,
		Title:                   s.Title.Copy(),
		Description:             s.Description.Copy(),
	}
}
