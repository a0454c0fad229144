package interfaces

import (
	"context"

	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

// Repository gives access to the reference catalogs used for recommendations
type Repository interface {
	Location() LocationRiskRepository
	Vulnerability() VulnerabilityRepository
	Multiplier() MultiplierRepository
	Strategy() StrategyRepository

	Close() error
}

// LocationRiskRepository stores hazard risk levels per administrative unit
type LocationRiskRepository interface {
	// Get retrieves the profile of an administrative unit
	Get(ctx context.Context, adminUnitID string) (*model.LocationRiskProfile, error)

	// List retrieves all profiles
	List(ctx context.Context) ([]*model.LocationRiskProfile, error)

	// Put creates or replaces a profile
	Put(ctx context.Context, profile *model.LocationRiskProfile) error
}

// VulnerabilityRepository stores hazard vulnerability per business type
type VulnerabilityRepository interface {
	Get(ctx context.Context, businessTypeID string) (*model.BusinessVulnerabilityProfile, error)
	List(ctx context.Context) ([]*model.BusinessVulnerabilityProfile, error)
	Put(ctx context.Context, profile *model.BusinessVulnerabilityProfile) error
}

// MultiplierRepository stores the characteristic multiplier catalog
type MultiplierRepository interface {
	// ListByCharacteristic retrieves every multiplier of one characteristic
	// type, active or not
	ListByCharacteristic(ctx context.Context, characteristicType types.CharacteristicType) ([]*model.Multiplier, error)

	List(ctx context.Context) ([]*model.Multiplier, error)
	Put(ctx context.Context, multiplier *model.Multiplier) error
}

// StrategyRepository stores the mitigation strategy catalog including action steps
type StrategyRepository interface {
	List(ctx context.Context) ([]*model.Strategy, error)
	Put(ctx context.Context, strategy *model.Strategy) error
}
