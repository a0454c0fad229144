package types

// NoticeKind classifies a non-fatal anomaly found while computing a recommendation
type NoticeKind string

const (
	// NoticeInputData reports an out-of-range level, severity or factor that was clamped
	NoticeInputData NoticeKind = "input_data"
	// NoticeUnresolvableMultiplier reports active multipliers tied on priority
	NoticeUnresolvableMultiplier NoticeKind = "unresolvable_multiplier"
	// NoticeEmptyCatalogResult reports that no strategy matched any scored hazard
	NoticeEmptyCatalogResult NoticeKind = "empty_catalog_result"
	// NoticeMissingHazardCoverage reports a ranked hazard without applicable strategies
	NoticeMissingHazardCoverage NoticeKind = "missing_hazard_coverage"
	// NoticeUnknownCharacteristic reports a wizard answer with no multiplier in the catalog
	NoticeUnknownCharacteristic NoticeKind = "unknown_characteristic"
	// NoticeUnknownValue reports a malformed hazard key, tier or phase that was excluded
	NoticeUnknownValue NoticeKind = "unknown_value"
	// NoticeDuplicateStrategy reports a strategy ID appearing more than once in the catalog
	NoticeDuplicateStrategy NoticeKind = "duplicate_strategy"
)

// IsWarning reports whether the notice should be surfaced to the end user
func (k NoticeKind) IsWarning() bool {
	switch k {
	case NoticeMissingHazardCoverage, NoticeEmptyCatalogResult, NoticeInputData,
		NoticeUnknownCharacteristic, NoticeUnknownValue:
		return true
	default:
		return false
	}
}

// String returns the string representation of NoticeKind
func (k NoticeKind) String() string {
	return string(k)
}
