package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// CollectionStrategies holds one document per strategy with action steps embedded
const CollectionStrategies = "strategies"

type strategyDocument struct {
	ID                      string               `firestore:"id"`
	ApplicableRisks         []string             `firestore:"applicable_risks"`
	ApplicableBusinessTypes []string             `firestore:"applicable_business_types"`
	SelectionTier           string               `firestore:"selection_tier"`
	Priority                string               `firestore:"priority"`
	Title                   map[string]string    `firestore:"title,omitempty"`
	Description             map[string]string    `firestore:"description,omitempty"`
	ActionSteps             []actionStepDocument `firestore:"action_steps"`
}

type actionStepDocument struct {
	ID          string            `firestore:"id"`
	Phase       string            `firestore:"phase"`
	SortOrder   int               `firestore:"sort_order"`
	Title       map[string]string `firestore:"title,omitempty"`
	Description map[string]string `firestore:"description,omitempty"`
}

type strategyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStrategyRepository(client *firestore.Client) *strategyRepository {
	return &strategyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *strategyRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionStrategies))
}

func strategyToDocument(s *model.Strategy) *strategyDocument {
	risks := make([]string, len(s.ApplicableRisks))
	for i, h := range s.ApplicableRisks {
		risks[i] = h.String()
	}
	steps := make([]actionStepDocument, len(s.ActionSteps))
	for i, step := range s.ActionSteps {
		steps[i] = actionStepDocument{
			ID:          step.ID,
			Phase:       step.Phase.String(),
			SortOrder:   step.SortOrder,
			Title:       step.Title.Copy(),
			Description: step.Description.Copy(),
		}
	}
	return &strategyDocument{
		ID:                      s.ID.String(),
		ApplicableRisks:         risks,
		ApplicableBusinessTypes: append([]string{}, s.ApplicableBusinessTypes...),
		SelectionTier:           s.SelectionTier.String(),
		Priority:                s.Priority.String(),
		Title:                   s.Title.Copy(),
		Description:             s.Description.Copy(),
		ActionSteps:             steps,
	}
}

func strategyToModel(doc *strategyDocument) *model.Strategy {
	id := model.StrategyID(doc.ID)
	risks := make([]types.Hazard, len(doc.ApplicableRisks))
	for i, h := range doc.ApplicableRisks {
		risks[i] = types.Hazard(h)
	}
	steps := make([]model.ActionStep, len(doc.ActionSteps))
	for i, step := range doc.ActionSteps {
		steps[i] = model.ActionStep{
			ID:          step.ID,
			StrategyID:  id,
			Phase:       types.Phase(step.Phase),
			SortOrder:   step.SortOrder,
			Title:       model.LocalizedText(step.Title).Copy(),
			Description: model.LocalizedText(step.Description).Copy(),
		}
	}
	return &model.Strategy{
		ID:                      id,
		ApplicableRisks:         risks,
		ApplicableBusinessTypes: append([]string(nil), doc.ApplicableBusinessTypes...),
		SelectionTier:           types.SelectionTier(doc.SelectionTier),
		Priority:                types.StrategyPriority(doc.Priority),
		ActionSteps:             steps,
		Title:                   model.LocalizedText(doc.Title).Copy(),
		Description:             model.LocalizedText(doc.Description).Copy(),
	}
}

func (r *strategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	iter := r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	strategies := []*model.Strategy{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate strategies")
		}

		var sDoc strategyDocument
		if err := doc.DataTo(&sDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal strategy", goerr.V("doc_id", doc.Ref.ID))
		}
		strategies = append(strategies, strategyToModel(&sDoc))
	}

	return strategies, nil
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if strategy == nil || strategy.ID == "" {
		return goerr.Wrap(ErrInvalidArgument, "strategy ID is required")
	}

	if _, err := r.collection().Doc(strategy.ID.String()).Set(ctx, strategyToDocument(strategy)); err != nil {
		return goerr.Wrap(err, "failed to put strategy", goerr.V("id", strategy.ID))
	}
	return nil
}
