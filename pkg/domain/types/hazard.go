package types

import (
	"regexp"
	"sort"

	"github.com/m-mizutani/goerr/v2"
)

// Hazard is an open key for a category of risk event such as "hurricane",
// "flood" or "cyberAttack". New hazards may appear in data at any time.
type Hazard string

var keyPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Validate checks that the hazard key is well-formed
func (h Hazard) Validate() error {
	if h == "" {
		return goerr.New("hazard key cannot be empty")
	}
	if !keyPattern.MatchString(string(h)) {
		return goerr.New("hazard key must start with a letter and contain only letters, digits or underscores", goerr.V("hazard", h))
	}
	return nil
}

// String returns the string representation of Hazard
func (h Hazard) String() string {
	return string(h)
}

// HazardRegistry is the set of hazards known to one data snapshot.
// It is built once and never mutated afterwards.
type HazardRegistry struct {
	known map[Hazard]struct{}
}

// NewHazardRegistry builds a registry from well-formed keys. Malformed keys are
// returned separately so callers can report them.
func NewHazardRegistry(hazards ...Hazard) (*HazardRegistry, []Hazard) {
	reg := &HazardRegistry{known: make(map[Hazard]struct{}, len(hazards))}
	var rejected []Hazard
	for _, h := range hazards {
		if err := h.Validate(); err != nil {
			rejected = append(rejected, h)
			continue
		}
		reg.known[h] = struct{}{}
	}
	return reg, rejected
}

// Known reports whether h belongs to the registry
func (r *HazardRegistry) Known(h Hazard) bool {
	if r == nil {
		return false
	}
	_, ok := r.known[h]
	return ok
}

// Len returns the number of registered hazards
func (r *HazardRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.known)
}

// List returns registered hazards in ascending key order
func (r *HazardRegistry) List() []Hazard {
	if r == nil {
		return nil
	}
	hazards := make([]Hazard, 0, len(r.known))
	for h := range r.known {
		hazards = append(hazards, h)
	}
	sort.Slice(hazards, func(i, j int) bool { return hazards[i] < hazards[j] })
	return hazards
}
