package usecase

import (
	"time"

	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
)

type UseCases struct {
	repo           interfaces.Repository
	now            func() time.Time
	Recommendation *RecommendationUseCase
}

type Option func(*UseCases)

// WithClock replaces the clock used to stamp generated plans
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Recommendation = NewRecommendationUseCase(repo, uc.now)

	return uc
}
