package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
)

type locationRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.LocationRiskProfile
}

func newLocationRepository() *locationRepository {
	return &locationRepository{
		profiles: make(map[string]*model.LocationRiskProfile),
	}
}

func (r *locationRepository) Get(ctx context.Context, adminUnitID string) (*model.LocationRiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[adminUnitID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "location risk profile not found", goerr.V("admin_unit_id", adminUnitID))
	}

	// Return a copy to prevent external modification
	return profile.Copy(), nil
}

func (r *locationRepository) List(ctx context.Context) ([]*model.LocationRiskProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.LocationRiskProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p.Copy())
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].AdminUnitID < profiles[j].AdminUnitID })

	return profiles, nil
}

func (r *locationRepository) Put(ctx context.Context, profile *model.LocationRiskProfile) error {
	if profile == nil || profile.AdminUnitID == "" {
		return goerr.Wrap(ErrInvalidArgument, "admin unit ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.AdminUnitID] = profile.Copy()
	return nil
}
