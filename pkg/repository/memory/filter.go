package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
)

type filterRepository struct {
	mu      sync.RWMutex
	filters map[model.FilterID]*model.FilterRevision
}

func newFilterRepository() *filterRepository {
	return &filterRepository{
		filters: make(map[model.FilterID]*model.FilterRevision),
	}
}

func (r *filterRepository) Get(ctx context.Context, id model.FilterID) (*model.FilterRevision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rev, ok := r.filters[id]
	if !ok {
		return nil, nil
	}
	return rev.Copy(), nil
}

func (r *filterRepository) List(ctx context.Context) ([]*model.FilterRevision, error) {
	return r.all(), nil
}

func (r *filterRepository) ListByField(ctx context.Context, fieldID string) ([]*model.FilterRevision, error) {
	revs := make([]*model.FilterRevision, 0)
	for _, rev := range r.all() {
		if rev.FieldID == fieldID {
			revs = append(revs, rev)
		}
	}
	return revs, nil
}

func (r *filterRepository) Put(ctx context.Context, rev *model.FilterRevision) error {
	if rev.ID == "" {
		return goerr.New("filter ID is required", goerr.V(model.FieldIDKey, rev.FieldID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := rev.Copy()
	saved.UpdatedAt = time.Now().UTC()
	r.filters[saved.ID] = saved
	return nil
}

func (r *filterRepository) Delete(ctx context.Context, id model.FilterID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.filters, id)
	return nil
}

func (r *filterRepository) all() []*model.FilterRevision {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revs := make([]*model.FilterRevision, 0, len(r.filters))
	for _, rev := range r.filters {
		revs = append(revs, rev.Copy())
	}
	sort.Slice(revs, func(i, j int) bool {
		if revs[i].FieldID != revs[j].FieldID {
			return revs[i].FieldID < revs[j].FieldID
		}
		return revs[i].ID < revs[j].ID
	})
	return revs
}
