package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FiltersCollection is the collection name of filter revisions without prefix
const FiltersCollection = "grid_filters"

type filterDocument struct {
	ID        string    `firestore:"id"`
	FieldID   string    `firestore:"field_id"`
	FieldType string    `firestore:"field_type"`
	Condition int64     `firestore:"condition"`
	Content   string    `firestore:"content"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type filterRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFilterRepository(client *firestore.Client) *filterRepository {
	return &filterRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *filterRepository) filtersCollection() string {
	return CollectionName(r.collectionPrefix, FiltersCollection)
}

func filterToDocument(rev *model.FilterRevision) *filterDocument {
	return &filterDocument{
		ID:        rev.ID.String(),
		FieldID:   rev.FieldID,
		FieldType: rev.FieldType.String(),
		Condition: int64(rev.Condition),
		Content:   rev.Content,
		UpdatedAt: rev.UpdatedAt,
	}
}

// filterToModel narrows the stored condition to a byte. Codes that do not fit
// are mapped to an out-of-range value so the filter loading boundary applies
// its default.
func filterToModel(doc *filterDocument) *model.FilterRevision {
	condition := uint8(255)
	if doc.Condition >= 0 && doc.Condition <= 255 {
		condition = uint8(doc.Condition)
	}
	return &model.FilterRevision{
		ID:        model.FilterID(doc.ID),
		FieldID:   doc.FieldID,
		FieldType: types.FieldType(doc.FieldType),
		Condition: condition,
		Content:   doc.Content,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *filterRepository) Get(ctx context.Context, id model.FilterID) (*model.FilterRevision, error) {
	snap, err := r.client.Collection(r.filtersCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get filter", goerr.V(model.FilterIDKey, id))
	}

	var doc filterDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode filter", goerr.V(model.FilterIDKey, id))
	}
	return filterToModel(&doc), nil
}

func (r *filterRepository) List(ctx context.Context) ([]*model.FilterRevision, error) {
	return r.collect(r.client.Collection(r.filtersCollection()).
		OrderBy("field_id", firestore.Asc).
		OrderBy("id", firestore.Asc).
		Documents(ctx))
}

func (r *filterRepository) ListByField(ctx context.Context, fieldID string) ([]*model.FilterRevision, error) {
	return r.collect(r.client.Collection(r.filtersCollection()).
		Where("field_id", "==", fieldID).
		Documents(ctx))
}

func (r *filterRepository) collect(iter *firestore.DocumentIterator) ([]*model.FilterRevision, error) {
	defer iter.Stop()

	revs := make([]*model.FilterRevision, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate filters")
		}

		var doc filterDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode filter", goerr.V("doc_id", snap.Ref.ID))
		}
		revs = append(revs, filterToModel(&doc))
	}

	return revs, nil
}

func (r *filterRepository) Put(ctx context.Context, rev *model.FilterRevision) error {
	if rev.ID == "" {
		return goerr.New("filter ID is required", goerr.V(model.FieldIDKey, rev.FieldID))
	}

	doc := filterToDocument(rev)
	doc.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.filtersCollection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save filter", goerr.V(model.FilterIDKey, rev.ID))
	}
	return nil
}

func (r *filterRepository) Delete(ctx context.Context, id model.FilterID) error {
	if _, err := r.client.Collection(r.filtersCollection()).Doc(id.String()).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete filter", goerr.V(model.FilterIDKey, id))
	}
	return nil
}
