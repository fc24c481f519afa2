package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CellsCollection is the collection name of grid cells without prefix
const CellsCollection = "grid_cells"

type cellDocument struct {
	RowID     string    `firestore:"row_id"`
	FieldID   string    `firestore:"field_id"`
	FieldType string    `firestore:"field_type"`
	Data      string    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type cellRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCellRepository(client *firestore.Client) *cellRepository {
	return &cellRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *cellRepository) cellsCollection() string {
	return CollectionName(r.collectionPrefix, CellsCollection)
}

func (r *cellRepository) docID(rowID, fieldID string) string {
	return rowID + "_" + fieldID
}

func cellToDocument(cell *model.Cell) *cellDocument {
	return &cellDocument{
		RowID:     cell.RowID,
		FieldID:   cell.FieldID,
		FieldType: cell.FieldType.String(),
		Data:      cell.Data,
		UpdatedAt: cell.UpdatedAt,
	}
}

func cellToModel(doc *cellDocument) *model.Cell {
	return &model.Cell{
		RowID:     doc.RowID,
		FieldID:   doc.FieldID,
		FieldType: types.FieldType(doc.FieldType),
		Data:      doc.Data,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *cellRepository) Get(ctx context.Context, rowID, fieldID string) (*model.Cell, error) {
	snap, err := r.client.Collection(r.cellsCollection()).Doc(r.docID(rowID, fieldID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get cell",
			goerr.V(model.RowIDKey, rowID),
			goerr.V(model.FieldIDKey, fieldID))
	}

	var doc cellDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode cell", goerr.V("doc_id", snap.Ref.ID))
	}
	return cellToModel(&doc), nil
}

func (r *cellRepository) GetByRowIDs(ctx context.Context, fieldID string, rowIDs []string) (map[string]*model.Cell, error) {
	result := make(map[string]*model.Cell, len(rowIDs))
	if len(rowIDs) == 0 {
		return result, nil
	}

	refs := make([]*firestore.DocumentRef, len(rowIDs))
	for i, rowID := range rowIDs {
		refs[i] = r.client.Collection(r.cellsCollection()).Doc(r.docID(rowID, fieldID))
	}

	snaps, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get cells", goerr.V(model.FieldIDKey, fieldID))
	}

	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var doc cellDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode cell", goerr.V("doc_id", snap.Ref.ID))
		}
		result[doc.RowID] = cellToModel(&doc)
	}

	return result, nil
}

func (r *cellRepository) ListByField(ctx context.Context, fieldID string) ([]*model.Cell, error) {
	iter := r.client.Collection(r.cellsCollection()).
		Where("field_id", "==", fieldID).
		OrderBy("row_id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	cells := make([]*model.Cell, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cells", goerr.V(model.FieldIDKey, fieldID))
		}

		var doc cellDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode cell", goerr.V("doc_id", snap.Ref.ID))
		}
		cells = append(cells, cellToModel(&doc))
	}

	return cells, nil
}

func (r *cellRepository) Save(ctx context.Context, cell *model.Cell) error {
	doc := cellToDocument(cell)
	doc.UpdatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.cellsCollection()).Doc(r.docID(cell.RowID, cell.FieldID)).Set(ctx, doc)
	if err != nil {
		return goerr.Wrap(err, "failed to save cell",
			goerr.V(model.RowIDKey, cell.RowID),
			goerr.V(model.FieldIDKey, cell.FieldID))
	}

	return nil
}

func (r *cellRepository) Update(ctx context.Context, rowID, fieldID string, fn interfaces.CellUpdateFunc) (*model.Cell, error) {
	docRef := r.client.Collection(r.cellsCollection()).Doc(r.docID(rowID, fieldID))

	var saved *model.Cell
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var previous *model.Cell
		snap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get cell in transaction")
			}
		} else {
			var doc cellDocument
			if err := snap.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode cell", goerr.V("doc_id", snap.Ref.ID))
			}
			previous = cellToModel(&doc)
		}

		next, err := fn(previous)
		if err != nil {
			return err
		}
		if next == nil {
			return goerr.New("cell update returned no cell")
		}

		doc := cellToDocument(next)
		doc.RowID = rowID
		doc.FieldID = fieldID
		doc.UpdatedAt = time.Now().UTC()
		if err := tx.Set(docRef, doc); err != nil {
			return goerr.Wrap(err, "failed to set cell in transaction")
		}

		saved = cellToModel(doc)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update cell",
			goerr.V(model.RowIDKey, rowID),
			goerr.V(model.FieldIDKey, fieldID))
	}

	return saved, nil
}

func (r *cellRepository) DeleteByRowID(ctx context.Context, rowID string) error {
	iter := r.client.Collection(r.cellsCollection()).
		Where("row_id", "==", rowID).
		Documents(ctx)
	defer iter.Stop()

	var docRefs []*firestore.DocumentRef
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate cells for deletion", goerr.V(model.RowIDKey, rowID))
		}
		docRefs = append(docRefs, snap.Ref)
	}

	for _, docRef := range docRefs {
		if _, err := docRef.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete cell",
				goerr.V(model.RowIDKey, rowID),
				goerr.V("doc_id", docRef.ID))
		}
	}

	return nil
}
