package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/secmon-lab/preparedness/pkg/repository/memory"
	"github.com/secmon-lab/preparedness/pkg/usecase"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
)

func intPtr(v int) *int { return &v }

func seedRepository(t *testing.T) *memory.Memory {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	gt.NoError(t, repo.Location().Put(ctx, &model.LocationRiskProfile{
		AdminUnitID: "kingston",
		Levels:      map[types.Hazard]int{"hurricane": 8, "flood": 3},
	})).Required()
	gt.NoError(t, repo.Vulnerability().Put(ctx, &model.BusinessVulnerabilityProfile{
		BusinessTypeID: "hotel",
		Entries: map[types.Hazard]model.Vulnerability{
			"hurricane": {VulnerabilityLevel: 7, ImpactSeverity: 9},
			"flood":     {VulnerabilityLevel: 2, ImpactSeverity: 4},
		},
	})).Required()
	gt.NoError(t, repo.Multiplier().Put(ctx, &model.Multiplier{
		ID:                 "tourism-v2",
		CharacteristicType: "tourism_share",
		Priority:           1,
		IsActive:           true,
		AnswerOptions:      map[string]float64{"high": 1.3, "low": 1.0},
		AppliesToHazards:   []types.Hazard{"hurricane"},
	})).Required()
	gt.NoError(t, repo.Multiplier().Put(ctx, &model.Multiplier{
		ID:                 "tourism-v1",
		CharacteristicType: "tourism_share",
		Priority:           2,
		IsActive:           true,
		AnswerOptions:      map[string]float64{"high": 3.0},
		AppliesToHazards:   []types.Hazard{"hurricane"},
	})).Required()
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                      "shutters",
		ApplicableRisks:         []types.Hazard{"hurricane"},
		ApplicableBusinessTypes: []string{model.AllBusinessesWildcard},
		SelectionTier:           types.SelectionTierEssential,
		Priority:                types.StrategyPriorityHigh,
		ActionSteps: []model.ActionStep{
			{ID: "buy", Phase: "immediate", SortOrder: 1},
			{ID: "inspect", Phase: "medium_term", SortOrder: 1},
		},
	})).Required()
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                      "sandbags",
		ApplicableRisks:         []types.Hazard{"flood"},
		ApplicableBusinessTypes: []string{"hotel"},
		SelectionTier:           types.SelectionTierRecommended,
		Priority:                types.StrategyPriorityMedium,
		ActionSteps: []model.ActionStep{
			{ID: "stockpile", Phase: "before", SortOrder: 1},
		},
	})).Required()

	return repo
}

func TestComputeRecommendation(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := usecase.New(seedRepository(t), usecase.WithClock(func() time.Time { return now }))

	plan, err := uc.Recommendation.ComputeRecommendation(context.Background(), "kingston", "hotel",
		model.WizardAnswers{"tourism_share": "high"},
		usecase.RecommendationOptions{RecommendedCap: intPtr(5)},
	)
	gt.NoError(t, err).Required()

	gt.String(t, string(plan.ID)).NotEqual("")
	gt.Value(t, plan.GeneratedAt).Equal(now)
	gt.Value(t, plan.AdminUnitID).Equal("kingston")

	gt.Array(t, plan.RankedRisks).Length(2)
	gt.Value(t, plan.RankedRisks[0].Hazard).Equal(types.Hazard("hurricane"))
	gt.Value(t, plan.RankedRisks[0].Multiplier).Equal(1.3)

	gt.Array(t, plan.AppliedMultipliers).Length(1)
	gt.Value(t, plan.AppliedMultipliers[0].MultiplierID).Equal("tourism-v2")

	gt.Array(t, plan.SelectedStrategies).Length(2)
	var steps []string
	for _, e := range plan.ActionPlan {
		steps = append(steps, e.Step.ID)
	}
	gt.Value(t, steps).Equal([]string{"buy", "stockpile", "inspect"})
}

func TestComputeRecommendation_DefaultCap(t *testing.T) {
	uc := usecase.New(seedRepository(t))

	capped, err := uc.Recommendation.ComputeRecommendation(context.Background(), "kingston", "hotel", nil,
		usecase.RecommendationOptions{RecommendedCap: intPtr(0)})
	gt.NoError(t, err).Required()
	gt.Array(t, capped.SelectedStrategies).Length(1)
	gt.Value(t, capped.SelectedStrategies[0].Strategy.ID).Equal(model.StrategyID("shutters"))

	defaulted, err := uc.Recommendation.ComputeRecommendation(context.Background(), "kingston", "hotel", nil,
		usecase.RecommendationOptions{})
	gt.NoError(t, err).Required()
	gt.Array(t, defaulted.SelectedStrategies).Length(2)
}

func TestComputeRecommendation_NotFound(t *testing.T) {
	uc := usecase.New(seedRepository(t))
	ctx := context.Background()

	_, err := uc.Recommendation.ComputeRecommendation(ctx, "atlantis", "hotel", nil, usecase.RecommendationOptions{})
	gt.Error(t, err).Is(usecase.ErrLocationNotFound)
	gt.Error(t, err).Is(interfaces.ErrNotFound)

	_, err = uc.Recommendation.ComputeRecommendation(ctx, "kingston", "spaceport", nil, usecase.RecommendationOptions{})
	gt.Error(t, err).Is(usecase.ErrBusinessTypeNotFound)
	gt.Bool(t, errors.Is(err, usecase.ErrLocationNotFound)).False()
}

func TestComputeRecommendation_InvalidInput(t *testing.T) {
	uc := usecase.New(seedRepository(t))

	_, err := uc.Recommendation.ComputeRecommendation(context.Background(), "", "hotel", nil, usecase.RecommendationOptions{})
	gt.Error(t, err).Is(usecase.ErrInvalidInput)

	_, err = uc.Recommendation.ComputeRecommendation(context.Background(), "kingston", "", nil, usecase.RecommendationOptions{})
	gt.Error(t, err).Is(usecase.ErrInvalidInput)
}

type failingStrategyRepository struct {
	err error
}

func (r *failingStrategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	return nil, r.err
}

func (r *failingStrategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	return r.err
}

type failingRepository struct {
	*memory.Memory
	strategy *failingStrategyRepository
}

func (r *failingRepository) Strategy() interfaces.StrategyRepository {
	return r.strategy
}

func TestComputeRecommendation_DataSourceFailure(t *testing.T) {
	cause := goerr.New("connection reset")
	repo := &failingRepository{
		Memory:   seedRepository(t),
		strategy: &failingStrategyRepository{err: cause},
	}
	uc := usecase.New(repo)

	plan, err := uc.Recommendation.ComputeRecommendation(context.Background(), "kingston", "hotel", nil, usecase.RecommendationOptions{})
	gt.Value(t, plan).Nil()
	gt.Error(t, err).Is(usecase.ErrDataSource)
	gt.Error(t, err).Is(cause)
}

func TestComputeRecommendation_LogsNotices(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	repo := seedRepository(t)
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:                      "shutters",
		ApplicableRisks:         []types.Hazard{"earthquake"},
		ApplicableBusinessTypes: []string{model.AllBusinessesWildcard},
		SelectionTier:           types.SelectionTierEssential,
		Priority:                types.StrategyPriorityHigh,
	})).Required()

	uc := usecase.New(repo)
	plan, err := uc.Recommendation.ComputeRecommendation(ctx, "kingston", "hotel", nil, usecase.RecommendationOptions{})
	gt.NoError(t, err).Required()

	gt.Array(t, plan.NoticesOf(types.NoticeMissingHazardCoverage)).Length(1)
	gt.String(t, buf.String()).Contains(`"level":"WARN"`)
	gt.String(t, buf.String()).Contains(`"kind":"missing_hazard_coverage"`)
	gt.String(t, buf.String()).Contains(`"subject":"hurricane"`)
	gt.String(t, buf.String()).Contains(`"msg":"recommendation computed"`)
}
