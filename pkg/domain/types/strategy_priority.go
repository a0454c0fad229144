package types

import "fmt"

// StrategyPriority is the editorial priority of a mitigation strategy
type StrategyPriority string

const (
	StrategyPriorityCritical StrategyPriority = "critical"
	StrategyPriorityHigh     StrategyPriority = "high"
	StrategyPriorityMedium   StrategyPriority = "medium"
	StrategyPriorityLow      StrategyPriority = "low"
)

// AllStrategyPriorities returns all valid priorities, highest first
func AllStrategyPriorities() []StrategyPriority {
	return []StrategyPriority{
		StrategyPriorityCritical,
		StrategyPriorityHigh,
		StrategyPriorityMedium,
		StrategyPriorityLow,
	}
}

// IsValid checks if the priority is valid
func (p StrategyPriority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities: critical=4, high=3, medium=2, low=1. Unknown values rank 0.
func (p StrategyPriority) Rank() int {
	switch p {
	case StrategyPriorityCritical:
		return 4
	case StrategyPriorityHigh:
		return 3
	case StrategyPriorityMedium:
		return 2
	case StrategyPriorityLow:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the priority
func (p StrategyPriority) String() string {
	return string(p)
}

// ParseStrategyPriority parses a string into a StrategyPriority
func ParseStrategyPriority(s string) (StrategyPriority, error) {
	p := StrategyPriority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid strategy priority: %s", s)
	}
	return p, nil
}
