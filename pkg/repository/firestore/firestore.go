package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
)

type Firestore struct {
	client *firestore.Client
	cell   *cellRepository
	filter *filterRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.cell.collectionPrefix = prefix
		f.filter.collectionPrefix = prefix
	}
}

// New connects to Firestore. An empty databaseID selects the default database.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client: client,
		cell:   newCellRepository(client),
		filter: newFilterRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Cell() interfaces.CellRepository {
	return f.cell
}

func (f *Firestore) Filter() interfaces.FilterRepository {
	return f.filter
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName returns the collection name with the optional prefix applied
func CollectionName(prefix, base string) string {
	if prefix != "" {
		return prefix + "_" + base
	}
	return base
}
