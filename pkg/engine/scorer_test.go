package engine_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/secmon-lab/preparedness/pkg/engine"
)

func approxEqual(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("expected %v (±%v), got %v", want, tolerance, got)
	}
}

func location(levels map[types.Hazard]int) *model.LocationRiskProfile {
	return &model.LocationRiskProfile{AdminUnitID: "kingston", Levels: levels}
}

func vulnerability(entries map[types.Hazard]model.Vulnerability) *model.BusinessVulnerabilityProfile {
	return &model.BusinessVulnerabilityProfile{BusinessTypeID: "hotel", Entries: entries}
}

func TestImpactWeight(t *testing.T) {
	gt.Value(t, engine.ImpactWeight(1)).Equal(1.0)
	gt.Value(t, engine.ImpactWeight(10)).Equal(2.0)
	approxEqual(t, engine.ImpactWeight(9), 1.889, 0.001)
}

func TestScoreRisks_WorkedExample(t *testing.T) {
	factors := engine.ResolveMultipliers(
		[]*model.Multiplier{tourismMultiplier("m1", 1, true, 1.3)},
		model.WizardAnswers{"tourism_share": "high"},
	)

	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{"hurricane": 8, "flood": 3}),
		vulnerability(map[types.Hazard]model.Vulnerability{
			"hurricane": {VulnerabilityLevel: 7, ImpactSeverity: 9},
			"flood":     {VulnerabilityLevel: 2, ImpactSeverity: 4},
		}),
		factors,
	)

	gt.Array(t, scoring.Ranked).Length(2)

	hurricane := scoring.Ranked[0]
	gt.Value(t, hurricane.Hazard).Equal(types.Hazard("hurricane"))
	gt.Number(t, hurricane.Rank).Equal(1)
	approxEqual(t, hurricane.ImpactWeight, 1.889, 0.001)
	approxEqual(t, hurricane.CombinedScore, 13.74, 0.02)
	gt.Value(t, hurricane.Multiplier).Equal(1.3)
	gt.Value(t, hurricane.Band).Equal(types.RiskBandCritical)

	flood := scoring.Ranked[1]
	gt.Value(t, flood.Hazard).Equal(types.Hazard("flood"))
	gt.Number(t, flood.Rank).Equal(2)
	approxEqual(t, flood.ImpactWeight, 1.333, 0.001)
	approxEqual(t, flood.CombinedScore, 0.80, 0.001)
	gt.Value(t, flood.Band).Equal(types.RiskBandLow)

	gt.Bool(t, hurricane.CombinedScore > flood.CombinedScore).True()
	gt.Array(t, scoring.Notices).Length(0)
}

func TestScoreRisks_ZeroAndMissingExcluded(t *testing.T) {
	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{
			"hurricane":  0,
			"flood":      5,
			"earthquake": 6,
		}),
		vulnerability(map[types.Hazard]model.Vulnerability{
			"hurricane":   {VulnerabilityLevel: 9, ImpactSeverity: 9},
			"flood":       {VulnerabilityLevel: 0, ImpactSeverity: 5},
			"cyberAttack": {VulnerabilityLevel: 8, ImpactSeverity: 8},
		}),
		nil,
	)

	gt.Array(t, scoring.Ranked).Length(0)
	gt.Value(t, scoring.Excluded).Equal([]types.Hazard{"cyberAttack", "earthquake", "flood", "hurricane"})
	gt.Array(t, scoring.Notices).Length(0)
}

func TestScoreRisks_TieBreaks(t *testing.T) {
	// identical location and vulnerability, different impact severities
	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{"drought": 5, "wildfire": 5, "flood": 5, "landslide": 5}),
		vulnerability(map[types.Hazard]model.Vulnerability{
			// 5 * 0.5 * 2.0 = 5.0
			"drought": {VulnerabilityLevel: 5, ImpactSeverity: 10},
			// 5 * 1.0 * 1.0 = 5.0, lower impact than drought
			"wildfire": {VulnerabilityLevel: 10, ImpactSeverity: 1},
			// identical to wildfire: falls back to key order
			"flood":     {VulnerabilityLevel: 10, ImpactSeverity: 1},
			"landslide": {VulnerabilityLevel: 10, ImpactSeverity: 1},
		}),
		nil,
	)

	var order []types.Hazard
	for _, r := range scoring.Ranked {
		order = append(order, r.Hazard)
	}
	gt.Value(t, order).Equal([]types.Hazard{"drought", "flood", "landslide", "wildfire"})
}

func TestScoreRisks_Deterministic(t *testing.T) {
	loc := location(map[types.Hazard]int{"a": 4, "b": 4, "c": 4, "d": 7, "e": 2})
	vuln := vulnerability(map[types.Hazard]model.Vulnerability{
		"a": {VulnerabilityLevel: 5, ImpactSeverity: 5},
		"b": {VulnerabilityLevel: 5, ImpactSeverity: 5},
		"c": {VulnerabilityLevel: 5, ImpactSeverity: 5},
		"d": {VulnerabilityLevel: 3, ImpactSeverity: 2},
		"e": {VulnerabilityLevel: 9, ImpactSeverity: 10},
	})

	first := engine.ScoreRisks(loc, vuln, nil)
	for i := 0; i < 20; i++ {
		gt.Value(t, engine.ScoreRisks(loc, vuln, nil).Ranked).Equal(first.Ranked)
	}
}

func TestScoreRisks_ClampsOutOfRange(t *testing.T) {
	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{"hurricane": 14, "flood": -2}),
		vulnerability(map[types.Hazard]model.Vulnerability{
			"hurricane": {VulnerabilityLevel: 12, ImpactSeverity: 0},
			"flood":     {VulnerabilityLevel: 5, ImpactSeverity: 5},
		}),
		nil,
	)

	gt.Array(t, scoring.Ranked).Length(1)
	r := scoring.Ranked[0]
	gt.Number(t, r.LocationRisk).Equal(10)
	gt.Number(t, r.Vulnerability).Equal(10)
	gt.Number(t, r.ImpactSeverity).Equal(1)
	gt.Value(t, r.CombinedScore).Equal(10.0)
	gt.Value(t, scoring.Excluded).Equal([]types.Hazard{"flood"})

	// hurricane: location, vulnerability, impact; flood: location
	gt.Array(t, scoring.Notices).Length(4)
	for _, n := range scoring.Notices {
		gt.Value(t, n.Kind).Equal(types.NoticeInputData)
	}
}

func TestScoreRisks_CeilingAppliesAfterMultiplier(t *testing.T) {
	res := &model.MultiplierResolution{Factors: map[types.Hazard]float64{"hurricane": 3.0}}
	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{"hurricane": 10}),
		vulnerability(map[types.Hazard]model.Vulnerability{"hurricane": {VulnerabilityLevel: 10, ImpactSeverity: 10}}),
		res,
	)

	gt.Value(t, scoring.Ranked[0].CombinedScore).Equal(engine.ScoreCeiling)
}

func TestScoreRisks_MalformedHazardKey(t *testing.T) {
	scoring := engine.ScoreRisks(
		location(map[types.Hazard]int{"storm surge": 8, "flood": 4}),
		vulnerability(map[types.Hazard]model.Vulnerability{
			"storm surge": {VulnerabilityLevel: 8, ImpactSeverity: 8},
			"flood":       {VulnerabilityLevel: 4, ImpactSeverity: 4},
		}),
		nil,
	)

	gt.Array(t, scoring.Ranked).Length(1)
	gt.Value(t, scoring.Ranked[0].Hazard).Equal(types.Hazard("flood"))
	gt.Array(t, scoring.Notices).Length(1)
	gt.Value(t, scoring.Notices[0].Kind).Equal(types.NoticeUnknownValue)
	gt.Value(t, scoring.Notices[0].Subject).Equal("storm surge")
}

func TestScoreRisks_NilProfiles(t *testing.T) {
	scoring := engine.ScoreRisks(nil, nil, nil)
	gt.Array(t, scoring.Ranked).Length(0)
	gt.Array(t, scoring.Excluded).Length(0)
}
