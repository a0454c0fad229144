package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CollectionLocationRisks holds one document per administrative unit
const CollectionLocationRisks = "location_risks"

type locationDocument struct {
	AdminUnitID string            `firestore:"admin_unit_id"`
	Name        map[string]string `firestore:"name,omitempty"`
	Levels      map[string]int    `firestore:"levels"`
}

type locationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLocationRepository(client *firestore.Client) *locationRepository {
	return &locationRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *locationRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionLocationRisks))
}

func locationToDocument(p *model.LocationRiskProfile) *locationDocument {
	levels := make(map[string]int, len(p.Levels))
	for h, v := range p.Levels {
		levels[h.String()] = v
	}
	return &locationDocument{
		AdminUnitID: p.AdminUnitID,
		Name:        p.Name.Copy(),
		Levels:      levels,
	}
}

func locationToModel(doc *locationDocument) *model.LocationRiskProfile {
	levels := make(map[types.Hazard]int, len(doc.Levels))
	for h, v := range doc.Levels {
		levels[types.Hazard(h)] = v
	}
	return &model.LocationRiskProfile{
		AdminUnitID: doc.AdminUnitID,
		Name:        model.LocalizedText(doc.Name).Copy(),
		Levels:      levels,
	}
}

func (r *locationRepository) Get(ctx context.Context, adminUnitID string) (*model.LocationRiskProfile, error) {
	doc, err := r.collection().Doc(adminUnitID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "location risk profile not found", goerr.V("admin_unit_id", adminUnitID))
		}
		return nil, goerr.Wrap(err, "failed to get location risk profile", goerr.V("admin_unit_id", adminUnitID))
	}

	var locDoc locationDocument
	if err := doc.DataTo(&locDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal location risk profile", goerr.V("admin_unit_id", adminUnitID))
	}
	return locationToModel(&locDoc), nil
}

func (r *locationRepository) List(ctx context.Context) ([]*model.LocationRiskProfile, error) {
	iter := r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	profiles := []*model.LocationRiskProfile{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate location risk profiles")
		}

		var locDoc locationDocument
		if err := doc.DataTo(&locDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal location risk profile", goerr.V("doc_id", doc.Ref.ID))
		}
		profiles = append(profiles, locationToModel(&locDoc))
	}

	return profiles, nil
}

func (r *locationRepository) Put(ctx context.Context, profile *model.LocationRiskProfile) error {
	if profile == nil || profile.AdminUnitID == "" {
		return goerr.Wrap(ErrInvalidArgument, "admin unit ID is required")
	}

	if _, err := r.collection().Doc(profile.AdminUnitID).Set(ctx, locationToDocument(profile)); err != nil {
		return goerr.Wrap(err, "failed to put location risk profile", goerr.V("admin_unit_id", profile.AdminUnitID))
	}
	return nil
}
