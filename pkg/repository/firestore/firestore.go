package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
)

type Firestore struct {
	client        *firestore.Client
	location      *locationRepository
	vulnerability *vulnerabilityRepository
	multiplier    *multiplierRepository
	strategy      *strategyRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.location.collectionPrefix = prefix
		f.vulnerability.collectionPrefix = prefix
		f.multiplier.collectionPrefix = prefix
		f.strategy.collectionPrefix = prefix
	}
}

// New connects to the Firestore database. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:        client,
		location:      newLocationRepository(client),
		vulnerability: newVulnerabilityRepository(client),
		multiplier:    newMultiplierRepository(client),
		strategy:      newStrategyRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Location() interfaces.LocationRiskRepository {
	return f.location
}

func (f *Firestore) Vulnerability() interfaces.VulnerabilityRepository {
	return f.vulnerability
}

func (f *Firestore) Multiplier() interfaces.MultiplierRepository {
	return f.multiplier
}

func (f *Firestore) Strategy() interfaces.StrategyRepository {
	return f.strategy
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName applies the collection prefix to a base collection name
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
