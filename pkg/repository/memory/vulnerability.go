package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
)

type vulnerabilityRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.BusinessVulnerabilityProfile
}

func newVulnerabilityRepository() *vulnerabilityRepository {
	return &vulnerabilityRepository{
		profiles: make(map[string]*model.BusinessVulnerabilityProfile),
	}
}

func (r *vulnerabilityRepository) Get(ctx context.Context, businessTypeID string) (*model.BusinessVulnerabilityProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[businessTypeID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "business vulnerability profile not found", goerr.V("business_type_id", businessTypeID))
	}
	return profile.Copy(), nil
}

func (r *vulnerabilityRepository) List(ctx context.Context) ([]*model.BusinessVulnerabilityProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.BusinessVulnerabilityProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p.Copy())
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].BusinessTypeID < profiles[j].BusinessTypeID })

	return profiles, nil
}

func (r *vulnerabilityRepository) Put(ctx context.Context, profile *model.BusinessVulnerabilityProfile) error {
	if profile == nil || profile.BusinessTypeID == "" {
		return goerr.Wrap(ErrInvalidArgument, "business type ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.BusinessTypeID] = profile.Copy()
	return nil
}
