package model

import "github.com/secmon-lab/preparedness/pkg/domain/types"

// LocationRiskProfile holds per-hazard risk levels (0-10) of an administrative unit
type LocationRiskProfile struct {
	AdminUnitID string
	Name        LocalizedText
	Levels      map[types.Hazard]int
}

// Vulnerability is how exposed (VulnerabilityLevel, 0-10) and how harmed
// (ImpactSeverity, 1-10) a business type is by one hazard
type Vulnerability struct {
	VulnerabilityLevel int
	ImpactSeverity     int
}

// BusinessVulnerabilityProfile holds per-hazard vulnerability of a business type
type BusinessVulnerabilityProfile struct {
	BusinessTypeID string
	Name           LocalizedText
	Entries        map[types.Hazard]Vulnerability
}

// Copy returns a deep copy of the profile
func (p *LocationRiskProfile) Copy() *LocationRiskProfile {
	if p == nil {
		return nil
	}
	levels := make(map[types.Hazard]int, len(p.Levels))
	for h, v := range p.Levels {
		levels[h] = v
	}
	return &LocationRiskProfile{
		AdminUnitID: p.AdminUnitID,
		Name:        p.Name.Copy(),
		Levels:      levels,
	}
}

// Copy returns a deep copy of the profile
func (p *BusinessVulnerabilityProfile) Copy() *BusinessVulnerabilityProfile {
	if p == nil {
		return nil
	}
	entries := make(map[types.Hazard]Vulnerability, len(p.Entries))
	for h, v := range p.Entries {
		entries[h] = v
	}
	return &BusinessVulnerabilityProfile{
		BusinessTypeID: p.BusinessTypeID,
		Name:           p.Name.Copy(),
		Entries:        entries,
	}
}
