package model

import "github.com/secmon-lab/preparedness/pkg/domain/types"

// Notice describes a non-fatal anomaly. The computation degraded gracefully
// but the caller may want to surface or log it.
type Notice struct {
	Kind    types.NoticeKind
	Subject string // hazard key, strategy ID, multiplier ID or characteristic type
	Message string
	Values  map[string]any
}
