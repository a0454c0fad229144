package types

import "fmt"

// SelectionTier governs whether a strategy is always included or competes for
// a bounded number of slots
type SelectionTier string

const (
	SelectionTierEssential   SelectionTier = "essential"
	SelectionTierRecommended SelectionTier = "recommended"
	SelectionTierOptional    SelectionTier = "optional"
)

// AllSelectionTiers returns all valid selection tiers
func AllSelectionTiers() []SelectionTier {
	return []SelectionTier{
		SelectionTierEssential,
		SelectionTierRecommended,
		SelectionTierOptional,
	}
}

// IsValid checks if the selection tier is valid
func (s SelectionTier) IsValid() bool {
	switch s {
	case SelectionTierEssential,
		SelectionTierRecommended,
		SelectionTierOptional:
		return true
	default:
		return false
	}
}

// String returns the string representation of the selection tier
func (s SelectionTier) String() string {
	return string(s)
}

// ParseSelectionTier parses a string into a SelectionTier
func ParseSelectionTier(s string) (SelectionTier, error) {
	tier := SelectionTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid selection tier: %s", s)
	}
	return tier, nil
}
