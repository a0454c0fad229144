package model

import "github.com/secmon-lab/preparedness/pkg/domain/types"

// CombinedRiskScore is the derived risk of one hazard for one location and business type
type CombinedRiskScore struct {
	Hazard         types.Hazard
	LocationRisk   int
	Vulnerability  int
	ImpactSeverity int
	ImpactWeight   float64
	Multiplier     float64
	CombinedScore  float64
	Rank           int
	Band           types.RiskBand
}

// RiskScoring is the output of risk scoring
type RiskScoring struct {
	// Ranked holds hazards with a positive score, highest first
	Ranked []CombinedRiskScore
	// Excluded holds hazards of the universe that scored zero, in key order
	Excluded []types.Hazard
	Notices  []Notice
}
