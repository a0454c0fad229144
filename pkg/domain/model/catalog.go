package model

// Catalog is the full reference data set behind recommendations
type Catalog struct {
	Locations     []*LocationRiskProfile
	BusinessTypes []*BusinessVulnerabilityProfile
	Multipliers   []*Multiplier
	Strategies    []*Strategy
}
