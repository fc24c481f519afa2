package types

import "github.com/m-mizutani/goerr/v2"

// ErrInvalidData is returned when a stored enum code is out of range
var ErrInvalidData = goerr.New("invalid data")

// Context keys for error values
const (
	ConditionKey = "condition"
	ColorKey     = "color"
)
