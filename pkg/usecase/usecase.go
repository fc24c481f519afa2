package usecase

import (
	"github.com/secmon-lab/gridcell/pkg/domain/interfaces"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
)

const defaultFilterConcurrency = 8

type UseCases struct {
	repo              interfaces.Repository
	schema            *config.FieldSchema
	filterConcurrency int
	Grid              *GridUseCase
}

type Option func(*UseCases)

// WithFilterConcurrency limits how many fields are loaded in parallel while
// evaluating filters over rows
func WithFilterConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.filterConcurrency = n
		}
	}
}

func New(repo interfaces.Repository, schema *config.FieldSchema, opts ...Option) *UseCases {
	if schema == nil {
		schema = &config.FieldSchema{}
	}

	uc := &UseCases{
		repo:              repo,
		schema:            schema,
		filterConcurrency: defaultFilterConcurrency,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Grid = NewGridUseCase(repo, schema, uc.filterConcurrency)

	return uc
}

// Schema returns the field schema the use cases were built with
func (uc *UseCases) Schema() *config.FieldSchema {
	return uc.schema
}
