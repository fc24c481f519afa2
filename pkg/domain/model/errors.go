package model

import "github.com/m-mizutani/goerr/v2"

// Cell codec errors
var (
	ErrInvalidChangeset = goerr.New("invalid changeset")
)

// Validation errors
var (
	ErrInvalidFieldType     = goerr.New("invalid field type")
	ErrInvalidOptionID      = goerr.New("invalid option ID")
	ErrTooManyOptions       = goerr.New("too many options for single-select")
	ErrInvalidCheckboxValue = goerr.New("invalid checkbox value")
)

// Context keys for error values
const (
	FieldIDKey      = "field_id"
	RowIDKey        = "row_id"
	FilterIDKey     = "filter_id"
	ExpectedTypeKey = "expected_type"
	OptionIDKey     = "option_id"
	CellDataKey     = "cell_data"
	ChangesetKey    = "changeset"
	CauseKey        = "cause"
)
