package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/repository/firestore"
	"github.com/secmon-lab/preparedness/pkg/repository/memory"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory or firestore)",
			Value:       "memory",
			Sources:     cli.EnvVars("PREPAREDNESS_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("PREPAREDNESS_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("PREPAREDNESS_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix prepended to every Firestore collection name",
			Sources:     cli.EnvVars("PREPAREDNESS_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The memory backend is populated from catalog, which is required for it.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context, catalog *model.Catalog) (interfaces.Repository, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "firestore-project-id is required when using firestore backend")
		}
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return repo, nil

	case "memory":
		if catalog == nil {
			return nil, ErrCatalogRequired
		}
		repo := memory.New()
		if err := loadIntoRepository(ctx, repo, catalog); err != nil {
			return nil, err
		}
		logging.Default().Info("Using in-memory repository",
			"locations", len(catalog.Locations),
			"business_types", len(catalog.BusinessTypes),
			"multipliers", len(catalog.Multipliers),
			"strategies", len(catalog.Strategies),
		)
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unsupported repository backend", goerr.V("backend", r.backend))
	}
}

// loadIntoRepository stores the catalog. For repeated IDs the first entry is
// kept, matching how the engine treats duplicate strategies.
func loadIntoRepository(ctx context.Context, repo interfaces.Repository, catalog *model.Catalog) error {
	logger := logging.From(ctx)

	seenLocations := make(map[string]struct{})
	for _, l := range catalog.Locations {
		if _, dup := seenLocations[l.AdminUnitID]; dup {
			logger.Warn("duplicate location in catalog; first entry kept", "admin_unit_id", l.AdminUnitID)
			continue
		}
		seenLocations[l.AdminUnitID] = struct{}{}
		if err := repo.Location().Put(ctx, l); err != nil {
			return goerr.Wrap(err, "failed to load location", goerr.V("admin_unit_id", l.AdminUnitID))
		}
	}

	seenBusinessTypes := make(map[string]struct{})
	for _, b := range catalog.BusinessTypes {
		if _, dup := seenBusinessTypes[b.BusinessTypeID]; dup {
			logger.Warn("duplicate business type in catalog; first entry kept", "business_type_id", b.BusinessTypeID)
			continue
		}
		seenBusinessTypes[b.BusinessTypeID] = struct{}{}
		if err := repo.Vulnerability().Put(ctx, b); err != nil {
			return goerr.Wrap(err, "failed to load business type", goerr.V("business_type_id", b.BusinessTypeID))
		}
	}

	seenMultipliers := make(map[string]struct{})
	for _, m := range catalog.Multipliers {
		if _, dup := seenMultipliers[m.ID]; dup {
			logger.Warn("duplicate multiplier in catalog; first entry kept", "id", m.ID)
			continue
		}
		seenMultipliers[m.ID] = struct{}{}
		if err := repo.Multiplier().Put(ctx, m); err != nil {
			return goerr.Wrap(err, "failed to load multiplier", goerr.V("id", m.ID))
		}
	}

	seenStrategies := make(map[model.StrategyID]struct{})
	for _, s := range catalog.Strategies {
		if _, dup := seenStrategies[s.ID]; dup {
			logger.Warn("duplicate strategy in catalog; first entry kept", "id", s.ID)
			continue
		}
		seenStrategies[s.ID] = struct{}{}
		if err := repo.Strategy().Put(ctx, s); err != nil {
			return goerr.Wrap(err, "failed to load strategy", goerr.V("id", s.ID))
		}
	}

	return nil
}
