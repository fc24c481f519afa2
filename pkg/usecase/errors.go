package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrFieldNotFound  = goerr.New("field not found")
	ErrFilterNotFound = goerr.New("filter not found")
)

// Context keys for error values
const (
	RowIDKey    = "row_id"
	FieldIDKey  = "field_id"
	FilterIDKey = "filter_id"
)
