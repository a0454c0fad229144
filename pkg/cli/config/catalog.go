package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// CatalogFile is the TOML layout of a reference catalog
type CatalogFile struct {
	Locations     []LocationEntry     `toml:"location"`
	BusinessTypes []BusinessTypeEntry `toml:"business_type"`
	Multipliers   []MultiplierEntry   `toml:"multiplier"`
	Strategies    []StrategyEntry     `toml:"strategy"`
}

// LocationEntry is a location risk profile
type LocationEntry struct {
	ID     string            `toml:"id"`
	Name   map[string]string `toml:"name"`
	Levels map[string]int    `toml:"levels"`
}

// BusinessTypeEntry is a business vulnerability profile
type BusinessTypeEntry struct {
	ID      string                        `toml:"id"`
	Name    map[string]string             `toml:"name"`
	Hazards map[string]VulnerabilityEntry `toml:"hazards"`
}

// VulnerabilityEntry holds the vulnerability of one business type to one hazard
type VulnerabilityEntry struct {
	Vulnerability int `toml:"vulnerability"`
	Impact        int `toml:"impact"`
}

// MultiplierEntry is a characteristic multiplier. Active defaults to true.
type MultiplierEntry struct {
	ID                 string             `toml:"id"`
	CharacteristicType string             `toml:"characteristic_type"`
	Priority           int                `toml:"priority"`
	Active             *bool              `toml:"active"`
	Options            map[string]float64 `toml:"options"`
	AppliesTo          []string           `toml:"applies_to"`
	Label              map[string]string  `toml:"label"`
}

// StrategyEntry is a mitigation strategy and its action steps
type StrategyEntry struct {
	ID            string            `toml:"id"`
	Risks         []string          `toml:"risks"`
	BusinessTypes []string          `toml:"business_types"`
	Tier          string            `toml:"tier"`
	Priority      string            `toml:"priority"`
	Title         map[string]string `toml:"title"`
	Description   map[string]string `toml:"description"`
	Steps         []StepEntry       `toml:"step"`
}

// StepEntry is one action step of a strategy
type StepEntry struct {
	ID          string            `toml:"id"`
	Phase       string            `toml:"phase"`
	Order       int               `toml:"order"`
	Title       map[string]string `toml:"title"`
	Description map[string]string `toml:"description"`
}

// Validate checks structural requirements. Semantic problems such as
// out-of-range levels or unknown tiers are left to catalog validation so
// they can be reported together.
func (f *CatalogFile) Validate() error {
	for i, l := range f.Locations {
		if l.ID == "" {
			return goerr.Wrap(ErrMissingID, "location id is required", goerr.V(SectionKey, "location"), goerr.V(IndexKey, i))
		}
	}
	for i, b := range f.BusinessTypes {
		if b.ID == "" {
			return goerr.Wrap(ErrMissingID, "business type id is required", goerr.V(SectionKey, "business_type"), goerr.V(IndexKey, i))
		}
	}
	for i, m := range f.Multipliers {
		if m.ID == "" {
			return goerr.Wrap(ErrMissingID, "multiplier id is required", goerr.V(SectionKey, "multiplier"), goerr.V(IndexKey, i))
		}
		if m.CharacteristicType == "" {
			return goerr.Wrap(ErrInvalidConfig, "multiplier characteristic_type is required", goerr.V("id", m.ID))
		}
	}
	for i, s := range f.Strategies {
		if s.ID == "" {
			return goerr.Wrap(ErrMissingID, "strategy id is required", goerr.V(SectionKey, "strategy"), goerr.V(IndexKey, i))
		}
		for j, step := range s.Steps {
			if step.ID == "" {
				return goerr.Wrap(ErrMissingID, "action step id is required", goerr.V("strategy_id", s.ID), goerr.V(IndexKey, j))
			}
		}
	}
	return nil
}

// ToModel converts the file into the domain catalog, keeping entry order
func (f *CatalogFile) ToModel() *model.Catalog {
	catalog := &model.Catalog{
		Locations:     make([]*model.LocationRiskProfile, len(f.Locations)),
		BusinessTypes: make([]*model.BusinessVulnerabilityProfile, len(f.BusinessTypes)),
		Multipliers:   make([]*model.Multiplier, len(f.Multipliers)),
		Strategies:    make([]*model.Strategy, len(f.Strategies)),
	}

	for i, l := range f.Locations {
		levels := make(map[types.Hazard]int, len(l.Levels))
		for h, v := range l.Levels {
			levels[types.Hazard(h)] = v
		}
		catalog.Locations[i] = &model.LocationRiskProfile{
			AdminUnitID: l.ID,
			Name:        l.Name,
			Levels:      levels,
		}
	}

	for i, b := range f.BusinessTypes {
		entries := make(map[types.Hazard]model.Vulnerability, len(b.Hazards))
		for h, v := range b.Hazards {
			entries[types.Hazard(h)] = model.Vulnerability{
				VulnerabilityLevel: v.Vulnerability,
				ImpactSeverity:     v.Impact,
			}
		}
		catalog.BusinessTypes[i] = &model.BusinessVulnerabilityProfile{
			BusinessTypeID: b.ID,
			Name:           b.Name,
			Entries:        entries,
		}
	}

	for i, m := range f.Multipliers {
		active := true
		if m.Active != nil {
			active = *m.Active
		}
		catalog.Multipliers[i] = &model.Multiplier{
			ID:                 m.ID,
			CharacteristicType: types.CharacteristicType(m.CharacteristicType),
			Priority:           m.Priority,
			IsActive:           active,
			AnswerOptions:      m.Options,
			AppliesToHazards:   toHazards(m.AppliesTo),
			Label:              m.Label,
		}
	}

	for i, s := range f.Strategies {
		id := model.StrategyID(s.ID)
		steps := make([]model.ActionStep, len(s.Steps))
		for j, step := range s.Steps {
			steps[j] = model.ActionStep{
				ID:          step.ID,
				StrategyID:  id,
				Phase:       types.Phase(step.Phase),
				SortOrder:   step.Order,
				Title:       step.Title,
				Description: step.Description,
			}
		}
		catalog.Strategies[i] = &model.Strategy{
			ID:                      id,
			ApplicableRisks:         toHazards(s.Risks),
			ApplicableBusinessTypes: s.BusinessTypes,
			SelectionTier:           types.SelectionTier(s.Tier),
			Priority:                types.StrategyPriority(s.Priority),
			ActionSteps:             steps,
			Title:                   s.Title,
			Description:             s.Description,
		}
	}

	return catalog
}

func toHazards(keys []string) []types.Hazard {
	hazards := make([]types.Hazard, len(keys))
	for i, k := range keys {
		hazards[i] = types.Hazard(k)
	}
	return hazards
}

// LoadCatalogFile loads a reference catalog from a TOML file
func LoadCatalogFile(path string) (*model.Catalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(CatalogPathKey, path))
	}

	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog", goerr.V(CatalogPathKey, path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(CatalogPathKey, path))
	}

	return file.ToModel(), nil
}

// Catalog holds the CLI flag pointing at a catalog file
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog configuration
func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML catalog file (locations, business types, multipliers, strategies)",
			Sources:     cli.EnvVars("PREPAREDNESS_CATALOG"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured catalog file path
func (x *Catalog) Path() string {
	return x.path
}

// Configure loads the catalog file. It returns nil without error when no path is set.
func (x *Catalog) Configure() (*model.Catalog, error) {
	if x.path == "" {
		return nil, nil
	}
	return LoadCatalogFile(x.path)
}
