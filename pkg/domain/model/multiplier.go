package model

import "github.com/secmon-lab/preparedness/pkg/domain/types"

// Multiplier scales the risk of some hazards according to the wizard answer
// given for one business characteristic
type Multiplier struct {
	ID                 string
	CharacteristicType types.CharacteristicType
	Priority           int
	IsActive           bool
	AnswerOptions      map[string]float64 // answer value -> factor
	AppliesToHazards   []types.Hazard
	Label              LocalizedText
}

// Copy returns a deep copy of the multiplier
func (m *Multiplier) Copy() *Multiplier {
	if m == nil {
		return nil
	}
	options := make(map[string]float64, len(m.AnswerOptions))
	for k, v := range m.AnswerOptions {
		options[k] = v
	}
	return &Multiplier{
		ID:                 m.ID,
		CharacteristicType: m.CharacteristicType,
		Priority:           m.Priority,
		IsActive:           m.IsActive,
		AnswerOptions:      options,
		AppliesToHazards:   append([]types.Hazard(nil), m.AppliesToHazards...),
		Label:              m.Label.Copy(),
	}
}

// WizardAnswers maps a characteristic type to the answer value chosen in the wizard
type WizardAnswers map[types.CharacteristicType]string

// AppliedMultiplier records which multiplier won for a characteristic and the
// factor it contributed
type AppliedMultiplier struct {
	CharacteristicType types.CharacteristicType
	MultiplierID       string
	Answer             string
	Factor             float64
	Hazards            []types.Hazard
}

// MultiplierResolution is the output of multiplier resolution
type MultiplierResolution struct {
	// Factors holds the combined factor per hazard. Hazards absent from the map have factor 1.0.
	Factors map[types.Hazard]float64
	Applied []AppliedMultiplier
	Notices []Notice
}

// Factor returns the factor for h, defaulting to 1.0
func (r *MultiplierResolution) Factor(h types.Hazard) float64 {
	if r == nil {
		return 1.0
	}
	if f, ok := r.Factors[h]; ok {
		return f
	}
	return 1.0
}
