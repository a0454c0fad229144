package types

import (
	"fmt"
	"strings"
)

// Phase is the raw phase label of an action step as stored in the catalog.
// Two vocabularies exist in the data: before/during/after and
// immediate/short_term/medium_term/long_term.
type Phase string

// CanonicalPhase is the normalized, ordered phase of an action step
type CanonicalPhase string

const (
	PhaseBefore   CanonicalPhase = "before"
	PhaseDuring   CanonicalPhase = "during"
	PhaseAfter    CanonicalPhase = "after"
	PhaseLongTerm CanonicalPhase = "long_term"
)

// AllCanonicalPhases returns canonical phases in plan order
func AllCanonicalPhases() []CanonicalPhase {
	return []CanonicalPhase{PhaseBefore, PhaseDuring, PhaseAfter, PhaseLongTerm}
}

var phaseAliases = map[string]CanonicalPhase{
	"before":      PhaseBefore,
	"immediate":   PhaseBefore,
	"during":      PhaseDuring,
	"short_term":  PhaseDuring,
	"after":       PhaseAfter,
	"medium_term": PhaseAfter,
	"long_term":   PhaseLongTerm,
}

// Normalize maps a raw phase onto the canonical sequence. Matching ignores
// case and treats '-' and ' ' as '_'.
func (p Phase) Normalize() (CanonicalPhase, error) {
	key := strings.ToLower(strings.TrimSpace(string(p)))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if c, ok := phaseAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown action step phase: %q", string(p))
}

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// Ordinal returns the 1-based position of the phase in plan order, 0 if unknown
func (c CanonicalPhase) Ordinal() int {
	switch c {
	case PhaseBefore:
		return 1
	case PhaseDuring:
		return 2
	case PhaseAfter:
		return 3
	case PhaseLongTerm:
		return 4
	default:
		return 0
	}
}

// String returns the string representation of CanonicalPhase
func (c CanonicalPhase) String() string {
	return string(c)
}
