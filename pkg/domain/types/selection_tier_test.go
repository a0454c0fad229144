package types_test

import (
	"testing"

	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

func TestSelectionTier_IsValid(t *testing.T) {
	tests := []struct {
		name string
		tier types.SelectionTier
		want bool
	}{
		{name: "essential", tier: types.SelectionTierEssential, want: true},
		{name: "recommended", tier: types.SelectionTierRecommended, want: true},
		{name: "optional", tier: types.SelectionTierOptional, want: true},
		{name: "unknown", tier: types.SelectionTier("mandatory"), want: false},
		{name: "empty", tier: types.SelectionTier(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tier.IsValid(); got != tt.want {
				t.Errorf("SelectionTier.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSelectionTier(t *testing.T) {
	for _, tier := range types.AllSelectionTiers() {
		got, err := types.ParseSelectionTier(tier.String())
		if err != nil {
			t.Fatalf("ParseSelectionTier(%q) unexpected error: %v", tier, err)
		}
		if got != tier {
			t.Errorf("ParseSelectionTier(%q) = %v", tier, got)
		}
	}

	if _, err := types.ParseSelectionTier("Essential"); err == nil {
		t.Error("expected error for capitalized tier")
	}
}
