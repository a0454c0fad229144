package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/secmon-lab/preparedness/pkg/engine"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultRecommendedCap is the number of recommended and optional strategies
// kept when the caller does not set a cap
const DefaultRecommendedCap = 5

// RecommendationOptions are per-request tuning knobs
type RecommendationOptions struct {
	// RecommendedCap bounds non-essential strategies. Nil means DefaultRecommendedCap.
	RecommendedCap *int
	// CoverageTopN limits the coverage check to the top N ranked hazards; 0 checks all
	CoverageTopN int
}

type RecommendationUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewRecommendationUseCase(repo interfaces.Repository, now func() time.Time) *RecommendationUseCase {
	if now == nil {
		now = time.Now
	}
	return &RecommendationUseCase{
		repo: repo,
		now:  now,
	}
}

// ComputeRecommendation fetches a consistent snapshot of the catalogs and runs
// the recommendation engine on it. Data anomalies never fail the call; they
// are returned as plan notices. Only data source failures and unknown admin
// unit or business type are errors.
func (uc *RecommendationUseCase) ComputeRecommendation(ctx context.Context, adminUnitID, businessTypeID string, answers model.WizardAnswers, opts RecommendationOptions) (*model.RecommendationPlan, error) {
	if adminUnitID == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "admin unit ID is required")
	}
	if businessTypeID == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "business type ID is required")
	}

	snap, err := uc.fetchSnapshot(ctx, adminUnitID, businessTypeID, answers)
	if err != nil {
		return nil, err
	}

	recommendedCap := DefaultRecommendedCap
	if opts.RecommendedCap != nil {
		recommendedCap = *opts.RecommendedCap
	}

	plan := engine.Compute(*snap, engine.Request{
		BusinessType: businessTypeID,
		Answers:      answers,
		Options: engine.SelectOptions{
			RecommendedCap: recommendedCap,
			CoverageTopN:   opts.CoverageTopN,
		},
	})
	plan.ID = model.NewPlanID()
	plan.GeneratedAt = uc.now().UTC()

	logger := logging.From(ctx).With(
		slog.String("plan_id", string(plan.ID)),
		slog.String(AdminUnitIDKey, adminUnitID),
		slog.String(BusinessTypeIDKey, businessTypeID),
	)
	for _, n := range plan.Notices {
		attrs := []any{
			slog.String("kind", n.Kind.String()),
			slog.String("subject", n.Subject),
		}
		if len(n.Values) > 0 {
			attrs = append(attrs, slog.Any("values", n.Values))
		}
		if n.Kind.IsWarning() {
			logger.Warn(n.Message, attrs...)
		} else {
			logger.Info(n.Message, attrs...)
		}
	}
	logger.Info("recommendation computed",
		slog.Int("ranked_risks", len(plan.RankedRisks)),
		slog.Int("selected_strategies", len(plan.SelectedStrategies)),
		slog.Int("action_steps", len(plan.ActionPlan)),
		slog.Int("notices", len(plan.Notices)),
	)

	return plan, nil
}

// fetchSnapshot reads all inputs of one computation concurrently. Multipliers
// are fetched only for the characteristic types that were answered.
func (uc *RecommendationUseCase) fetchSnapshot(ctx context.Context, adminUnitID, businessTypeID string, answers model.WizardAnswers) (*engine.Snapshot, error) {
	charTypes := make([]types.CharacteristicType, 0, len(answers))
	for ct := range answers {
		charTypes = append(charTypes, ct)
	}
	sort.Slice(charTypes, func(i, j int) bool { return charTypes[i] < charTypes[j] })

	var (
		snap        engine.Snapshot
		multipliers = make([][]*model.Multiplier, len(charTypes))
	)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		profile, err := uc.repo.Location().Get(ctx, adminUnitID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(errors.Join(ErrLocationNotFound, err), "unknown admin unit", goerr.V(AdminUnitIDKey, adminUnitID))
			}
			return goerr.Wrap(errors.Join(ErrDataSource, err), "failed to get location risk profile", goerr.V(AdminUnitIDKey, adminUnitID))
		}
		snap.Location = profile
		return nil
	})

	eg.Go(func() error {
		profile, err := uc.repo.Vulnerability().Get(ctx, businessTypeID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(errors.Join(ErrBusinessTypeNotFound, err), "unknown business type", goerr.V(BusinessTypeIDKey, businessTypeID))
			}
			return goerr.Wrap(errors.Join(ErrDataSource, err), "failed to get business vulnerability profile", goerr.V(BusinessTypeIDKey, businessTypeID))
		}
		snap.Vulnerability = profile
		return nil
	})

	for i, ct := range charTypes {
		eg.Go(func() error {
			found, err := uc.repo.Multiplier().ListByCharacteristic(ctx, ct)
			if err != nil {
				return goerr.Wrap(errors.Join(ErrDataSource, err), "failed to list multipliers", goerr.V("characteristic_type", ct))
			}
			multipliers[i] = found
			return nil
		})
	}

	eg.Go(func() error {
		strategies, err := uc.repo.Strategy().List(ctx)
		if err != nil {
			return goerr.Wrap(errors.Join(ErrDataSource, err), "failed to list strategies")
		}
		snap.Strategies = strategies
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, found := range multipliers {
		snap.Multipliers = append(snap.Multipliers, found...)
	}

	return &snap, nil
}
