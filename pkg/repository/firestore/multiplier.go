package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// CollectionMultipliers holds one document per multiplier. Lookups by
// characteristic type ordered by priority need a composite index.
const CollectionMultipliers = "multipliers"

type multiplierDocument struct {
	ID                 string             `firestore:"id"`
	CharacteristicType string             `firestore:"characteristic_type"`
	Priority           int                `firestore:"priority"`
	IsActive           bool               `firestore:"is_active"`
	AnswerOptions      map[string]float64 `firestore:"answer_options"`
	AppliesToHazards   []string           `firestore:"applies_to_hazards"`
	Label              map[string]string  `firestore:"label,omitempty"`
}

type multiplierRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMultiplierRepository(client *firestore.Client) *multiplierRepository {
	return &multiplierRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *multiplierRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionMultipliers))
}

func multiplierToDocument(m *model.Multiplier) *multiplierDocument {
	hazards := make([]string, len(m.AppliesToHazards))
	for i, h := range m.AppliesToHazards {
		hazards[i] = h.String()
	}
	options := make(map[string]float64, len(m.AnswerOptions))
	for k, v := range m.AnswerOptions {
		options[k] = v
	}
	return &multiplierDocument{
		ID:                 m.ID,
		CharacteristicType: m.CharacteristicType.String(),
		Priority:           m.Priority,
		IsActive:           m.IsActive,
		AnswerOptions:      options,
		AppliesToHazards:   hazards,
		Label:              m.Label.Copy(),
	}
}

func multiplierToModel(doc *multiplierDocument) *model.Multiplier {
	hazards := make([]types.Hazard, len(doc.AppliesToHazards))
	for i, h := range doc.AppliesToHazards {
		hazards[i] = types.Hazard(h)
	}
	options := make(map[string]float64, len(doc.AnswerOptions))
	for k, v := range doc.AnswerOptions {
		options[k] = v
	}
	return &model.Multiplier{
		ID:                 doc.ID,
		CharacteristicType: types.CharacteristicType(doc.CharacteristicType),
		Priority:           doc.Priority,
		IsActive:           doc.IsActive,
		AnswerOptions:      options,
		AppliesToHazards:   hazards,
		Label:              model.LocalizedText(doc.Label).Copy(),
	}
}

func (r *multiplierRepository) ListByCharacteristic(ctx context.Context, characteristicType types.CharacteristicType) ([]*model.Multiplier, error) {
	query := r.collection().
		Where("characteristic_type", "==", characteristicType.String()).
		OrderBy("priority", firestore.Asc)

	multipliers, err := r.collect(query.Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list multipliers", goerr.V("characteristic_type", characteristicType))
	}
	return multipliers, nil
}

func (r *multiplierRepository) List(ctx context.Context) ([]*model.Multiplier, error) {
	multipliers, err := r.collect(r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list multipliers")
	}
	return multipliers, nil
}

func (r *multiplierRepository) collect(iter *firestore.DocumentIterator) ([]*model.Multiplier, error) {
	defer iter.Stop()

	multipliers := []*model.Multiplier{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate multipliers")
		}

		var mDoc multiplierDocument
		if err := doc.DataTo(&mDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal multiplier", goerr.V("doc_id", doc.Ref.ID))
		}
		multipliers = append(multipliers, multiplierToModel(&mDoc))
	}
	return multipliers, nil
}

func (r *multiplierRepository) Put(ctx context.Context, multiplier *model.Multiplier) error {
	if multiplier == nil || multiplier.ID == "" {
		return goerr.Wrap(ErrInvalidArgument, "multiplier ID is required")
	}

	if _, err := r.collection().Doc(multiplier.ID).Set(ctx, multiplierToDocument(multiplier)); err != nil {
		return goerr.Wrap(err, "failed to put multiplier", goerr.V("id", multiplier.ID))
	}
	return nil
}
