package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/cli/config"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

const sampleCatalog = `
[[location]]
id = "kingston"
name = { en = "Kingston" }
[location.levels]
hurricane = 8
flood = 3

[[business_type]]
id = "hotel"
name = { en = "Hotel" }
[business_type.hazards]
hurricane = { vulnerability = 7, impact = 9 }
flood = { vulnerability = 2, impact = 4 }

[[multiplier]]
id = "tourism-v2"
characteristic_type = "tourism_share"
priority = 1
applies_to = ["hurricane"]
[multiplier.options]
high = 1.3
low = 1.0

[[multiplier]]
id = "tourism-v1"
characteristic_type = "tourism_share"
priority = 2
active = false
applies_to = ["hurricane"]
[multiplier.options]
high = 2.0

[[strategy]]
id = "shutters"
risks = ["hurricane"]
business_types = ["all_businesses"]
tier = "essential"
priority = "high"
title = { en = "Install storm shutters" }

  [[strategy.step]]
  id = "buy"
  phase = "before"
  order = 1
  title = { en = "Buy shutters" }

  [[strategy.step]]
  id = "inspect"
  phase = "after"
  order = 1
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadCatalogFile(t *testing.T) {
	catalog, err := config.LoadCatalogFile(writeFile(t, sampleCatalog))
	gt.NoError(t, err).Required()

	gt.Array(t, catalog.Locations).Length(1)
	gt.Value(t, catalog.Locations[0].AdminUnitID).Equal("kingston")
	gt.Value(t, catalog.Locations[0].Levels).Equal(map[types.Hazard]int{"hurricane": 8, "flood": 3})
	gt.Value(t, catalog.Locations[0].Name).Equal(model.LocalizedText{"en": "Kingston"})

	gt.Array(t, catalog.BusinessTypes).Length(1)
	gt.Value(t, catalog.BusinessTypes[0].Entries["hurricane"]).Equal(model.Vulnerability{VulnerabilityLevel: 7, ImpactSeverity: 9})

	gt.Array(t, catalog.Multipliers).Length(2)
	gt.Bool(t, catalog.Multipliers[0].IsActive).True()
	gt.Bool(t, catalog.Multipliers[1].IsActive).False()
	gt.Value(t, catalog.Multipliers[0].AnswerOptions["high"]).Equal(1.3)
	gt.Value(t, catalog.Multipliers[0].AppliesToHazards).Equal([]types.Hazard{"hurricane"})

	gt.Array(t, catalog.Strategies).Length(1)
	s := catalog.Strategies[0]
	gt.Value(t, s.SelectionTier).Equal(types.SelectionTierEssential)
	gt.Value(t, s.Priority).Equal(types.StrategyPriorityHigh)
	gt.Array(t, s.ActionSteps).Length(2)
	gt.Value(t, s.ActionSteps[0].StrategyID).Equal(model.StrategyID("shutters"))
	gt.Value(t, s.ActionSteps[1].Phase).Equal(types.Phase("after"))
	gt.Value(t, s.ActionSteps[0].Title).Equal(model.LocalizedText{"en": "Buy shutters"})
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "location without id",
			content: "[[location]]\nname = { en = \"Nowhere\" }\n",
			wantErr: config.ErrMissingID,
		},
		{
			name:    "multiplier without characteristic type",
			content: "[[multiplier]]\nid = \"m1\"\n",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name:    "step without id",
			content: "[[strategy]]\nid = \"s1\"\n[[strategy.step]]\nphase = \"before\"\n",
			wantErr: config.ErrMissingID,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadCatalogFile(writeFile(t, tc.content))
			gt.Error(t, err).Is(tc.wantErr)
		})
	}

	t.Run("malformed TOML", func(t *testing.T) {
		_, err := config.LoadCatalogFile(writeFile(t, "[[location]\nid ="))
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadCatalogFile(filepath.Join(t.TempDir(), "nonexistent.toml"))
		gt.Value(t, err).NotNil()
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend is loaded from catalog", func(t *testing.T) {
		catalog, err := config.LoadCatalogFile(writeFile(t, sampleCatalog))
		gt.NoError(t, err).Required()

		repo, err := config.NewRepositoryForTest("memory").Configure(ctx, catalog)
		gt.NoError(t, err).Required()
		defer func() { _ = repo.Close() }()

		loc, err := repo.Location().Get(ctx, "kingston")
		gt.NoError(t, err).Required()
		gt.Value(t, loc.Levels["hurricane"]).Equal(8)

		multipliers, err := repo.Multiplier().ListByCharacteristic(ctx, "tourism_share")
		gt.NoError(t, err).Required()
		gt.Array(t, multipliers).Length(2)
	})

	t.Run("memory backend requires catalog", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("memory").Configure(ctx, nil)
		gt.Error(t, err).Is(config.ErrCatalogRequired)
	})

	t.Run("firestore backend requires project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore").Configure(ctx, nil)
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("sqlite").Configure(ctx, nil)
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestLoadIntoRepository_FirstEntryWins(t *testing.T) {
	ctx := context.Background()
	catalog := &model.Catalog{
		Strategies: []*model.Strategy{
			{ID: "shutters", SelectionTier: types.SelectionTierEssential},
			{ID: "shutters", SelectionTier: types.SelectionTierOptional},
		},
	}

	repo, err := config.NewRepositoryForTest("memory").Configure(ctx, &model.Catalog{})
	gt.NoError(t, err).Required()
	gt.NoError(t, config.LoadIntoRepository(ctx, repo, catalog)).Required()

	strategies, err := repo.Strategy().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, strategies).Length(1)
	gt.Value(t, strategies[0].SelectionTier).Equal(types.SelectionTierEssential)
}
