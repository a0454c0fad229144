package types

// RiskBand is a coarse label for a combined risk score on the 0-20 scale
type RiskBand string

const (
	RiskBandLow      RiskBand = "low"
	RiskBandMedium   RiskBand = "medium"
	RiskBandHigh     RiskBand = "high"
	RiskBandCritical RiskBand = "critical"
)

// BandForScore returns the band of a combined score
func BandForScore(score float64) RiskBand {
	switch {
	case score >= 12:
		return RiskBandCritical
	case score >= 8:
		return RiskBandHigh
	case score >= 4:
		return RiskBandMedium
	default:
		return RiskBandLow
	}
}

// String returns the string representation of RiskBand
func (b RiskBand) String() string {
	return string(b)
}
