package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/secmon-lab/preparedness/pkg/engine"
	"golang.org/x/sync/errgroup"
)

// LoadCatalog reads the whole reference catalog from the repository
func (uc *UseCases) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	var catalog model.Catalog

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		locations, err := uc.repo.Location().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list location risk profiles")
		}
		catalog.Locations = locations
		return nil
	})
	eg.Go(func() error {
		profiles, err := uc.repo.Vulnerability().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list business vulnerability profiles")
		}
		catalog.BusinessTypes = profiles
		return nil
	})
	eg.Go(func() error {
		multipliers, err := uc.repo.Multiplier().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list multipliers")
		}
		catalog.Multipliers = multipliers
		return nil
	})
	eg.Go(func() error {
		strategies, err := uc.repo.Strategy().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to list strategies")
		}
		catalog.Strategies = strategies
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validation issue targets
const (
	TargetLocation     = "location"
	TargetBusinessType = "business_type"
	TargetMultiplier   = "multiplier"
	TargetStrategy     = "strategy"
)

// ValidationIssue represents a single problem found in the catalog
type ValidationIssue struct {
	Target   string
	ID       string
	Field    string
	Message  string
	Expected string
	Actual   string
}

// ValidationResult holds the results of catalog validation
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateCatalog reports data problems that the engine would otherwise
// absorb silently at recommendation time: clamped values, tied or shadowed
// multipliers, unknown tiers and phases, and strategies that can never be
// selected. It does NOT modify the catalog.
func ValidateCatalog(catalog *model.Catalog) *ValidationResult {
	result := &ValidationResult{}
	if catalog == nil {
		return result
	}

	// hazards that some location can score above zero
	scorable := make(map[types.Hazard]struct{})
	// hazards mentioned by any profile
	known := make(map[types.Hazard]struct{})

	seenLocations := make(map[string]struct{})
	for _, loc := range catalog.Locations {
		if _, dup := seenLocations[loc.AdminUnitID]; dup {
			result.AddIssue(ValidationIssue{Target: TargetLocation, ID: loc.AdminUnitID, Field: "admin_unit_id", Message: "duplicate admin unit ID"})
			continue
		}
		seenLocations[loc.AdminUnitID] = struct{}{}

		for _, h := range sortedHazards(loc.Levels) {
			level := loc.Levels[h]
			validateHazardKey(result, TargetLocation, loc.AdminUnitID, h)
			known[h] = struct{}{}
			if level > 0 {
				scorable[h] = struct{}{}
			}
			validateRange(result, TargetLocation, loc.AdminUnitID, "levels."+h.String(), level, engine.MinLocationRisk, engine.MaxLocationRisk)
		}
	}

	seenBusinessTypes := make(map[string]struct{})
	for _, bt := range catalog.BusinessTypes {
		if _, dup := seenBusinessTypes[bt.BusinessTypeID]; dup {
			result.AddIssue(ValidationIssue{Target: TargetBusinessType, ID: bt.BusinessTypeID, Field: "business_type_id", Message: "duplicate business type ID"})
			continue
		}
		seenBusinessTypes[bt.BusinessTypeID] = struct{}{}

		for _, h := range sortedHazards(bt.Entries) {
			v := bt.Entries[h]
			validateHazardKey(result, TargetBusinessType, bt.BusinessTypeID, h)
			known[h] = struct{}{}
			validateRange(result, TargetBusinessType, bt.BusinessTypeID, h.String()+".vulnerability_level", v.VulnerabilityLevel, engine.MinVulnerability, engine.MaxVulnerability)
			validateRange(result, TargetBusinessType, bt.BusinessTypeID, h.String()+".impact_severity", v.ImpactSeverity, engine.MinImpactSeverity, engine.MaxImpactSeverity)
		}
	}

	validateMultipliers(result, catalog.Multipliers, known)
	validateStrategies(result, catalog.Strategies, catalog.BusinessTypes, scorable)

	return result
}

func validateMultipliers(result *ValidationResult, multipliers []*model.Multiplier, known map[types.Hazard]struct{}) {
	byType := make(map[types.CharacteristicType][]*model.Multiplier)
	seen := make(map[string]struct{})

	for _, m := range multipliers {
		if _, dup := seen[m.ID]; dup {
			result.AddIssue(ValidationIssue{Target: TargetMultiplier, ID: m.ID, Field: "id", Message: "duplicate multiplier ID"})
			continue
		}
		seen[m.ID] = struct{}{}

		if err := m.CharacteristicType.Validate(); err != nil {
			result.AddIssue(ValidationIssue{
				Target:   TargetMultiplier,
				ID:       m.ID,
				Field:    "characteristic_type",
				Message:  "malformed characteristic type",
				Expected: "letter followed by letters, digits or underscores",
				Actual:   m.CharacteristicType.String(),
			})
		}
		byType[m.CharacteristicType] = append(byType[m.CharacteristicType], m)

		if len(m.AnswerOptions) == 0 {
			result.AddIssue(ValidationIssue{Target: TargetMultiplier, ID: m.ID, Field: "answer_options", Message: "multiplier has no answer options and is always neutral"})
		}
		answers := make([]string, 0, len(m.AnswerOptions))
		for a := range m.AnswerOptions {
			answers = append(answers, a)
		}
		sort.Strings(answers)
		for _, a := range answers {
			f := m.AnswerOptions[a]
			if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
				result.AddIssue(ValidationIssue{
					Target:   TargetMultiplier,
					ID:       m.ID,
					Field:    "answer_options." + a,
					Message:  "factor is replaced by the neutral factor at recommendation time",
					Expected: "finite non-negative number",
					Actual:   fmt.Sprint(f),
				})
			}
		}

		for _, h := range m.AppliesToHazards {
			if err := h.Validate(); err != nil {
				validateHazardKey(result, TargetMultiplier, m.ID, h)
				continue
			}
			if _, ok := known[h]; !ok {
				result.AddIssue(ValidationIssue{
					Target:  TargetMultiplier,
					ID:      m.ID,
					Field:   "applies_to_hazards",
					Message: "hazard does not appear in any location or business type profile",
					Actual:  h.String(),
				})
			}
		}
	}

	charTypes := make([]types.CharacteristicType, 0, len(byType))
	for ct := range byType {
		charTypes = append(charTypes, ct)
	}
	sort.Slice(charTypes, func(i, j int) bool { return charTypes[i] < charTypes[j] })

	for _, ct := range charTypes {
		candidates := byType[ct]
		winner, tied := engine.SelectActiveMultiplier(candidates)
		if winner == nil {
			result.AddIssue(ValidationIssue{
				Target:  TargetMultiplier,
				ID:      ct.String(),
				Field:   "is_active",
				Message: "no active multiplier for the characteristic type",
			})
			continue
		}

		active := 0
		for _, m := range candidates {
			if m.IsActive {
				active++
			}
		}
		if active > 1 {
			result.AddIssue(ValidationIssue{
				Target:   TargetMultiplier,
				ID:       ct.String(),
				Field:    "is_active",
				Message:  fmt.Sprintf("%d active multipliers for one characteristic type; only the winner is used", active),
				Expected: "1",
				Actual:   winner.ID,
			})
		}
		if len(tied) > 0 {
			result.AddIssue(ValidationIssue{
				Target:   TargetMultiplier,
				ID:       ct.String(),
				Field:    "priority",
				Message:  fmt.Sprintf("active multipliers share priority %d; winner chosen by ID", winner.Priority),
				Expected: "distinct priorities",
				Actual:   fmt.Sprint(append([]string{winner.ID}, tied...)),
			})
		}
	}
}

func validateStrategies(result *ValidationResult, strategies []*model.Strategy, businessTypes []*model.BusinessVulnerabilityProfile, scorable map[types.Hazard]struct{}) {
	businessKnown := make(map[string]struct{}, len(businessTypes))
	for _, bt := range businessTypes {
		businessKnown[bt.BusinessTypeID] = struct{}{}
	}

	seen := make(map[model.StrategyID]struct{})
	for _, s := range strategies {
		id := s.ID.String()
		if _, dup := seen[s.ID]; dup {
			result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "id", Message: "duplicate strategy ID; only the first entry is used"})
			continue
		}
		seen[s.ID] = struct{}{}

		if !s.SelectionTier.IsValid() {
			result.AddIssue(ValidationIssue{
				Target:   TargetStrategy,
				ID:       id,
				Field:    "selection_tier",
				Message:  "unknown selection tier; strategy is never selected",
				Expected: fmt.Sprint(types.AllSelectionTiers()),
				Actual:   s.SelectionTier.String(),
			})
		}
		if !s.Priority.IsValid() {
			result.AddIssue(ValidationIssue{
				Target:   TargetStrategy,
				ID:       id,
				Field:    "priority",
				Message:  "unknown priority; ranked below every known priority",
				Expected: fmt.Sprint(types.AllStrategyPriorities()),
				Actual:   s.Priority.String(),
			})
		}

		if len(s.ApplicableBusinessTypes) == 0 {
			result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "applicable_business_types", Message: "strategy applies to no business type"})
		}
		for _, bt := range s.ApplicableBusinessTypes {
			if bt == model.AllBusinessesWildcard {
				continue
			}
			if _, ok := businessKnown[bt]; !ok {
				result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "applicable_business_types", Message: "unknown business type", Actual: bt})
			}
		}

		if len(s.ApplicableRisks) == 0 {
			result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "applicable_risks", Message: "strategy addresses no hazard"})
		}
		for _, h := range s.ApplicableRisks {
			if err := h.Validate(); err != nil {
				validateHazardKey(result, TargetStrategy, id, h)
				continue
			}
			if _, ok := scorable[h]; !ok {
				result.AddIssue(ValidationIssue{
					Target:  TargetStrategy,
					ID:      id,
					Field:   "applicable_risks",
					Message: "hazard has a positive risk level in no location; strategy cannot match it",
					Actual:  h.String(),
				})
			}
		}

		if len(s.ActionSteps) == 0 {
			result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "action_steps", Message: "strategy has no action steps"})
		}
		stepIDs := make(map[string]struct{}, len(s.ActionSteps))
		for _, step := range s.ActionSteps {
			if _, dup := stepIDs[step.ID]; dup {
				result.AddIssue(ValidationIssue{Target: TargetStrategy, ID: id, Field: "action_steps.id", Message: "duplicate action step ID", Actual: step.ID})
			}
			stepIDs[step.ID] = struct{}{}

			if _, err := step.Phase.Normalize(); err != nil {
				result.AddIssue(ValidationIssue{
					Target:   TargetStrategy,
					ID:       id,
					Field:    "action_steps." + step.ID + ".phase",
					Message:  "unknown phase; step is dropped from plans",
					Expected: fmt.Sprint(types.AllCanonicalPhases()),
					Actual:   step.Phase.String(),
				})
			}
		}
	}
}

func validateHazardKey(result *ValidationResult, target, id string, h types.Hazard) {
	if err := h.Validate(); err != nil {
		result.AddIssue(ValidationIssue{
			Target:   target,
			ID:       id,
			Field:    "hazard",
			Message:  "malformed hazard key",
			Expected: "letter followed by letters, digits or underscores",
			Actual:   h.String(),
		})
	}
}

func validateRange(result *ValidationResult, target, id, field string, v, lo, hi int) {
	if v < lo || v > hi {
		result.AddIssue(ValidationIssue{
			Target:   target,
			ID:       id,
			Field:    field,
			Message:  "value out of range; clamped at recommendation time",
			Expected: fmt.Sprintf("%d..%d", lo, hi),
			Actual:   fmt.Sprint(v),
		})
	}
}

func sortedHazards[V any](m map[types.Hazard]V) []types.Hazard {
	hazards := make([]types.Hazard, 0, len(m))
	for h := range m {
		hazards = append(hazards, h)
	}
	sort.Slice(hazards, func(i, j int) bool { return hazards[i] < hazards[j] })
	return hazards
}
