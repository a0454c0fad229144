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

// CollectionBusinessVulnerabilities holds one document per business type
const CollectionBusinessVulnerabilities = "business_vulnerabilities"

type vulnerabilityDocument struct {
	BusinessTypeID string                        `firestore:"business_type_id"`
	Name           map[string]string             `firestore:"name,omitempty"`
	Entries        map[string]vulnerabilityEntry `firestore:"entries"`
}

type vulnerabilityEntry struct {
	VulnerabilityLevel int `firestore:"vulnerability_level"`
	ImpactSeverity     int `firestore:"impact_severity"`
}

type vulnerabilityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVulnerabilityRepository(client *firestore.Client) *vulnerabilityRepository {
	return &vulnerabilityRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *vulnerabilityRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionBusinessVulnerabilities))
}

func vulnerabilityToDocument(p *model.BusinessVulnerabilityProfile) *vulnerabilityDocument {
	entries := make(map[string]vulnerabilityEntry, len(p.Entries))
	for h, v := range p.Entries {
		entries[h.String()] = vulnerabilityEntry{
			VulnerabilityLevel: v.VulnerabilityLevel,
			ImpactSeverity:     v.ImpactSeverity,
		}
	}
	return &vulnerabilityDocument{
		BusinessTypeID: p.BusinessTypeID,
		Name:           p.Name.Copy(),
		Entries:        entries,
	}
}

func vulnerabilityToModel(doc *vulnerabilityDocument) *model.BusinessVulnerabilityProfile {
	entries := make(map[types.Hazard]model.Vulnerability, len(doc.Entries))
	for h, v := range doc.Entries {
		entries[types.Hazard(h)] = model.Vulnerability{
			VulnerabilityLevel: v.VulnerabilityLevel,
			ImpactSeverity:     v.ImpactSeverity,
		}
	}
	return &model.BusinessVulnerabilityProfile{
		BusinessTypeID: doc.BusinessTypeID,
		Name:           model.LocalizedText(doc.Name).Copy(),
		Entries:        entries,
	}
}

func (r *vulnerabilityRepository) Get(ctx context.Context, businessTypeID string) (*model.BusinessVulnerabilityProfile, error) {
	doc, err := r.collection().Doc(businessTypeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "business vulnerability profile not found", goerr.V("business_type_id", businessTypeID))
		}
		return nil, goerr.Wrap(err, "failed to get business vulnerability profile", goerr.V("business_type_id", businessTypeID))
	}

	var vulnDoc vulnerabilityDocument
	if err := doc.DataTo(&vulnDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal business vulnerability profile", goerr.V("business_type_id", businessTypeID))
	}
	return vulnerabilityToModel(&vulnDoc), nil
}

func (r *vulnerabilityRepository) List(ctx context.Context) ([]*model.BusinessVulnerabilityProfile, error) {
	iter := r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	profiles := []*model.BusinessVulnerabilityProfile{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate business vulnerability profiles")
		}

		var vulnDoc vulnerabilityDocument
		if err := doc.DataTo(&vulnDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal business vulnerability profile", goerr.V("doc_id", doc.Ref.ID))
		}
		profiles = append(profiles, vulnerabilityToModel(&vulnDoc))
	}

	return profiles, nil
}

func (r *vulnerabilityRepository) Put(ctx context.Context, profile *model.BusinessVulnerabilityProfile) error {
	if profile == nil || profile.BusinessTypeID == "" {
		return goerr.Wrap(ErrInvalidArgument, "business type ID is required")
	}

	if _, err := r.collection().Doc(profile.BusinessTypeID).Set(ctx, vulnerabilityToDocument(profile)); err != nil {
		return goerr.Wrap(err, "failed to put business vulnerability profile", goerr.V("business_type_id", profile.BusinessTypeID))
	}
	return nil
}
