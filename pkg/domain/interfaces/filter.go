package interfaces

import (
	"context"

	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

// FilterRepository defines the interface for stored filter revisions
type FilterRepository interface {
	// Get retrieves a filter by ID.
	// Returns nil, nil if no filter exists with the given ID.
	Get(ctx context.Context, id model.FilterID) (*model.FilterRevision, error)

	// List retrieves all filters
	List(ctx context.Context) ([]*model.FilterRevision, error)

	// ListByField retrieves the filters attached to a field
	ListByField(ctx context.Context, fieldID string) ([]*model.FilterRevision, error)

	// Put creates or replaces a filter
	Put(ctx context.Context, rev *model.FilterRevision) error

	// Delete deletes a filter. Deleting a missing filter is not an error.
	Delete(ctx context.Context, id model.FilterID) error
}
