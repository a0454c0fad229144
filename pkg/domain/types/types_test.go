package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

func TestHazard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hazard  types.Hazard
		wantErr bool
	}{
		{"valid lowercase", "hurricane", false},
		{"valid camel case", "cyberAttack", false},
		{"valid snake case", "power_outage", false},
		{"valid with digits", "flood2", false},
		{"empty", "", true},
		{"leading digit", "2flood", true},
		{"hyphen", "storm-surge", true},
		{"spaces", "storm surge", true},
		{"leading underscore", "_flood", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hazard.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Hazard.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCharacteristicType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.CharacteristicType
		wantErr bool
	}{
		{"valid snake case", "tourism_share", false},
		{"valid camel case", "exportDependency", false},
		{"empty", "", true},
		{"hyphen", "tourism-share", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CharacteristicType.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHazardRegistry(t *testing.T) {
	reg, rejected := types.NewHazardRegistry("hurricane", "flood", "bad key", "flood", "cyberAttack")

	gt.Array(t, rejected).Length(1)
	gt.Value(t, rejected[0]).Equal(types.Hazard("bad key"))
	gt.Number(t, reg.Len()).Equal(3)
	gt.Bool(t, reg.Known("flood")).True()
	gt.Bool(t, reg.Known("earthquake")).False()
	gt.Value(t, reg.List()).Equal([]types.Hazard{"cyberAttack", "flood", "hurricane"})

	t.Run("nil registry knows nothing", func(t *testing.T) {
		var nilReg *types.HazardRegistry
		gt.Bool(t, nilReg.Known("flood")).False()
		gt.Number(t, nilReg.Len()).Equal(0)
	})
}

func TestBandForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.RiskBand
	}{
		{0, types.RiskBandLow},
		{3.99, types.RiskBandLow},
		{4, types.RiskBandMedium},
		{8, types.RiskBandHigh},
		{11.9, types.RiskBandHigh},
		{12, types.RiskBandCritical},
		{20, types.RiskBandCritical},
	}

	for _, tt := range tests {
		gt.Value(t, types.BandForScore(tt.score)).Equal(tt.want)
	}
}

func TestNoticeKind_IsWarning(t *testing.T) {
	gt.Bool(t, types.NoticeMissingHazardCoverage.IsWarning()).True()
	gt.Bool(t, types.NoticeInputData.IsWarning()).True()
	gt.Bool(t, types.NoticeUnresolvableMultiplier.IsWarning()).False()
	gt.Bool(t, types.NoticeUnknownCharacteristic.IsWarning()).True()
	gt.Bool(t, types.NoticeUnknownValue.IsWarning()).True()
	gt.Bool(t, types.NoticeDuplicateStrategy.IsWarning()).False()
}
