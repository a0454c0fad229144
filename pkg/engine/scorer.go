package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

const (
	MinLocationRisk   = 0
	MaxLocationRisk   = 10
	MinVulnerability  = 0
	MaxVulnerability  = 10
	MinImpactSeverity = 1
	MaxImpactSeverity = 10

	// ScoreCeiling is MaxLocationRisk times the largest impact weight (2.0)
	ScoreCeiling = 20.0
)

// ImpactWeight maps impact severity 1..10 linearly onto 1.0..2.0
func ImpactWeight(impactSeverity int) float64 {
	return 1 + float64(impactSeverity-1)/9
}

// CombinedScore computes the clamped score of one hazard from already-clamped inputs
func CombinedScore(locationRisk, vulnerability, impactSeverity int, multiplier float64) float64 {
	score := float64(locationRisk) * (float64(vulnerability) / 10) * ImpactWeight(impactSeverity) * multiplier
	return clampFloat(score, 0, ScoreCeiling)
}

// ScoreRisks combines location risk, business vulnerability and multiplier
// factors into a ranked list of hazards.
//
// The hazard universe is the union of both profiles. A hazard missing from
// either profile scores zero and is reported in Excluded. Ranking is by score
// descending, then impact severity descending, then hazard key ascending.
func ScoreRisks(location *model.LocationRiskProfile, vulnerability *model.BusinessVulnerabilityProfile, factors *model.MultiplierResolution) *model.RiskScoring {
	result := &model.RiskScoring{}

	var levels map[types.Hazard]int
	if location != nil {
		levels = location.Levels
	}
	var entries map[types.Hazard]model.Vulnerability
	if vulnerability != nil {
		entries = vulnerability.Entries
	}

	universe := make([]types.Hazard, 0, len(levels)+len(entries))
	for h := range levels {
		universe = append(universe, h)
	}
	for h := range entries {
		if _, ok := levels[h]; !ok {
			universe = append(universe, h)
		}
	}

	registry, rejected := types.NewHazardRegistry(universe...)
	sort.Slice(rejected, func(i, j int) bool { return rejected[i] < rejected[j] })
	for _, h := range rejected {
		result.Notices = append(result.Notices, model.Notice{
			Kind:    types.NoticeUnknownValue,
			Subject: h.String(),
			Message: "malformed hazard key excluded from ranking",
		})
	}

	for _, h := range registry.List() {
		level, hasLevel := levels[h]
		vuln, hasVuln := entries[h]
		if !hasLevel || !hasVuln {
			result.Excluded = append(result.Excluded, h)
			continue
		}

		lr := clampInt(level, MinLocationRisk, MaxLocationRisk)
		if lr != level {
			result.Notices = append(result.Notices, clampNotice(h, "location risk level", level, lr))
		}
		vl := clampInt(vuln.VulnerabilityLevel, MinVulnerability, MaxVulnerability)
		if vl != vuln.VulnerabilityLevel {
			result.Notices = append(result.Notices, clampNotice(h, "vulnerability level", vuln.VulnerabilityLevel, vl))
		}
		is := clampInt(vuln.ImpactSeverity, MinImpactSeverity, MaxImpactSeverity)
		if is != vuln.ImpactSeverity {
			result.Notices = append(result.Notices, clampNotice(h, "impact severity", vuln.ImpactSeverity, is))
		}

		mult := factors.Factor(h)
		score := CombinedScore(lr, vl, is, mult)
		if score <= 0 {
			result.Excluded = append(result.Excluded, h)
			continue
		}

		result.Ranked = append(result.Ranked, model.CombinedRiskScore{
			Hazard:         h,
			LocationRisk:   lr,
			Vulnerability:  vl,
			ImpactSeverity: is,
			ImpactWeight:   ImpactWeight(is),
			Multiplier:     mult,
			CombinedScore:  score,
			Band:           types.BandForScore(score),
		})
	}

	sort.Slice(result.Ranked, func(i, j int) bool {
		a, b := result.Ranked[i], result.Ranked[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		if a.ImpactSeverity != b.ImpactSeverity {
			return a.ImpactSeverity > b.ImpactSeverity
		}
		return a.Hazard < b.Hazard
	})
	for i := range result.Ranked {
		result.Ranked[i].Rank = i + 1
	}

	return result
}

func clampNotice(h types.Hazard, field string, got, used int) model.Notice {
	return model.Notice{
		Kind:    types.NoticeInputData,
		Subject: h.String(),
		Message: fmt.Sprintf("%s %d out of range; clamped to %d", field, got, used),
		Values:  map[string]any{"field": field, "value": got, "clamped": used},
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
