package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/model/typeoption"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
	"github.com/secmon-lab/gridcell/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type GridUseCase struct {
	repo              interfaces.Repository
	schema            *config.FieldSchema
	filterConcurrency int
}

func NewGridUseCase(repo interfaces.Repository, schema *config.FieldSchema, filterConcurrency int) *GridUseCase {
	if filterConcurrency <= 0 {
		filterConcurrency = defaultFilterConcurrency
	}
	return &GridUseCase{
		repo:              repo,
		schema:            schema,
		filterConcurrency: filterConcurrency,
	}
}

func (uc *GridUseCase) typeOption(fieldID string) (config.FieldDefinition, typeoption.TypeOption, error) {
	field, ok := uc.schema.Lookup(fieldID)
	if !ok {
		return config.FieldDefinition{}, nil, goerr.Wrap(ErrFieldNotFound, "field is not in schema",
			goerr.V(FieldIDKey, fieldID))
	}
	to, err := typeoption.New(field)
	if err != nil {
		return config.FieldDefinition{}, nil, goerr.Wrap(err, "failed to build type option",
			goerr.V(FieldIDKey, fieldID))
	}
	return field, to, nil
}

// storedData returns the stored string and the type it was written under.
// A missing cell reads as empty data of the field's current type.
func storedData(cell *model.Cell, fieldType types.FieldType) (string, types.FieldType) {
	if cell == nil {
		return "", fieldType
	}
	if cell.FieldType == "" {
		return cell.Data, fieldType
	}
	return cell.Data, cell.FieldType
}

// GetCell loads and decodes a cell
func (uc *GridUseCase) GetCell(ctx context.Context, rowID, fieldID string) (*typeoption.DecodedCell, error) {
	field, to, err := uc.typeOption(fieldID)
	if err != nil {
		return nil, err
	}

	cell, err := uc.repo.Cell().Get(ctx, rowID, fieldID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get cell",
			goerr.V(RowIDKey, rowID),
			goerr.V(FieldIDKey, fieldID))
	}

	data, decodedType := storedData(cell, field.Type)
	return to.DecodeCellData(data, decodedType), nil
}

// UpdateCell applies a changeset to a cell and saves the result. The read,
// apply and save run as one repository update so concurrent edits of the
// same cell do not overwrite each other. A rejected changeset leaves the
// stored cell untouched.
func (uc *GridUseCase) UpdateCell(ctx context.Context, rowID, fieldID, changeset string) (*model.Cell, error) {
	field, to, err := uc.typeOption(fieldID)
	if err != nil {
		return nil, err
	}

	rejected := false
	cell, err := uc.repo.Cell().Update(ctx, rowID, fieldID, func(previous *model.Cell) (*model.Cell, error) {
		rejected = false

		// Data written under another field type is not carried over
		if previous != nil && previous.FieldType != "" && previous.FieldType != field.Type {
			logging.From(ctx).Debug("discarding cell written under another field type",
				"row_id", rowID,
				"field_id", fieldID,
				"stored_type", previous.FieldType,
			)
			previous = nil
		}

		data, err := to.ApplyChangeset(changeset, previous)
		if err != nil {
			rejected = true
			return nil, goerr.Wrap(err, "failed to apply changeset")
		}

		return &model.Cell{
			RowID:     rowID,
			FieldID:   fieldID,
			FieldType: field.Type,
			Data:      data,
		}, nil
	})
	if err != nil {
		if rejected {
			changesetsTotal.WithLabelValues(field.Type.String(), changesetResultRejected).Inc()
		}
		return nil, goerr.Wrap(err, "failed to update cell",
			goerr.V(RowIDKey, rowID),
			goerr.V(FieldIDKey, fieldID))
	}
	changesetsTotal.WithLabelValues(field.Type.String(), changesetResultApplied).Inc()

	return cell, nil
}

// PutFilter validates and stores a filter. A new ID is assigned when the
// revision has none. Condition codes are checked here so that only the
// loading boundary ever sees out-of-range values from older data.
func (uc *GridUseCase) PutFilter(ctx context.Context, rev *model.FilterRevision) (*model.FilterRevision, error) {
	if rev == nil {
		return nil, goerr.Wrap(types.ErrInvalidData, "filter is required")
	}

	field, ok := uc.schema.Lookup(rev.FieldID)
	if !ok {
		return nil, goerr.Wrap(ErrFieldNotFound, "filter targets unknown field",
			goerr.V(FieldIDKey, rev.FieldID))
	}

	stored := rev.Copy()
	stored.FieldType = field.Type
	if stored.ID == "" {
		stored.ID = model.NewFilterID()
	}

	switch field.Type {
	case types.FieldTypeCheckbox:
		if _, err := types.CheckboxConditionFrom(stored.Condition); err != nil {
			return nil, goerr.Wrap(err, "invalid checkbox filter", goerr.V(FilterIDKey, stored.ID))
		}
		stored.Content = ""
	case types.FieldTypeSingleSelect, types.FieldTypeMultiSelect:
		if _, err := types.SelectOptionConditionFrom(stored.Condition); err != nil {
			return nil, goerr.Wrap(err, "invalid select option filter", goerr.V(FilterIDKey, stored.ID))
		}
		stored.Content = model.ParseSelectOptionIDs(stored.Content).String()
	default:
		return nil, goerr.Wrap(typeoption.ErrUnsupportedFieldType, "field type has no filter",
			goerr.V(FieldIDKey, field.ID))
	}
	stored.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Filter().Put(ctx, stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put filter", goerr.V(FilterIDKey, stored.ID))
	}
	return stored, nil
}

// GetFilter returns a stored filter
func (uc *GridUseCase) GetFilter(ctx context.Context, id model.FilterID) (*model.FilterRevision, error) {
	rev, err := uc.repo.Filter().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get filter", goerr.V(FilterIDKey, id))
	}
	if rev == nil {
		return nil, goerr.Wrap(ErrFilterNotFound, "filter does not exist", goerr.V(FilterIDKey, id))
	}
	return rev, nil
}

// ListFilters returns every stored filter
func (uc *GridUseCase) ListFilters(ctx context.Context) ([]*model.FilterRevision, error) {
	revs, err := uc.repo.Filter().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list filters")
	}
	return revs, nil
}

// DeleteFilter removes a stored filter. Deleting a missing filter succeeds.
func (uc *GridUseCase) DeleteFilter(ctx context.Context, id model.FilterID) error {
	if err := uc.repo.Filter().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete filter", goerr.V(FilterIDKey, id))
	}
	return nil
}

type fieldFilters struct {
	field   config.FieldDefinition
	to      typeoption.TypeOption
	filters []*model.FilterRevision
	cells   map[string]*model.Cell
}

// FilterRows returns the rows, in input order, whose cells pass every stored
// filter. Filters on fields that left the schema, or whose field changed
// type, are skipped.
func (uc *GridUseCase) FilterRows(ctx context.Context, rowIDs []string) ([]string, error) {
	revs, err := uc.repo.Filter().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list filters")
	}

	logger := logging.From(ctx)
	byField := make(map[string]*fieldFilters)
	var order []string
	for _, rev := range revs {
		ff, ok := byField[rev.FieldID]
		if !ok {
			field, found := uc.schema.Lookup(rev.FieldID)
			if !found {
				logger.Warn("skipping filter on unknown field",
					"filter_id", rev.ID,
					"field_id", rev.FieldID,
				)
				continue
			}
			to, err := typeoption.New(field)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to build type option", goerr.V(FieldIDKey, field.ID))
			}
			ff = &fieldFilters{field: field, to: to}
			byField[rev.FieldID] = ff
			order = append(order, rev.FieldID)
		}

		if rev.FieldType != "" && rev.FieldType != ff.field.Type {
			logger.Warn("skipping filter written for another field type",
				"filter_id", rev.ID,
				"field_id", rev.FieldID,
				"filter_type", rev.FieldType,
			)
			continue
		}
		ff.filters = append(ff.filters, rev)
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.filterConcurrency)
	for _, fieldID := range order {
		ff := byField[fieldID]
		if len(ff.filters) == 0 {
			continue
		}
		eg.Go(func() error {
			cells, err := uc.repo.Cell().GetByRowIDs(egCtx, ff.field.ID, rowIDs)
			if err != nil {
				return goerr.Wrap(err, "failed to load cells", goerr.V(FieldIDKey, ff.field.ID))
			}
			mu.Lock()
			ff.cells = cells
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	matched := make([]string, 0, len(rowIDs))
	for _, rowID := range rowIDs {
		if uc.rowPasses(rowID, order, byField) {
			matched = append(matched, rowID)
		}
	}
	return matched, nil
}

func (uc *GridUseCase) rowPasses(rowID string, order []string, byField map[string]*fieldFilters) bool {
	for _, fieldID := range order {
		ff := byField[fieldID]
		data, decodedType := storedData(ff.cells[rowID], ff.field.Type)
		for _, rev := range ff.filters {
			if !ff.to.ApplyFilter(data, decodedType, rev) {
				return false
			}
		}
	}
	return true
}
