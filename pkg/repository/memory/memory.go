package memory

import (
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	location      *locationRepository
	vulnerability *vulnerabilityRepository
	multiplier    *multiplierRepository
	strategy      *strategyRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		location:      newLocationRepository(),
		vulnerability: newVulnerabilityRepository(),
		multiplier:    newMultiplierRepository(),
		strategy:      newStrategyRepository(),
	}
}

func (m *Memory) Location() interfaces.LocationRiskRepository {
	return m.location
}

func (m *Memory) Vulnerability() interfaces.VulnerabilityRepository {
	return m.vulnerability
}

func (m *Memory) Multiplier() interfaces.MultiplierRepository {
	return m.multiplier
}

func (m *Memory) Strategy() interfaces.StrategyRepository {
	return m.strategy
}

func (m *Memory) Close() error {
	return nil
}
