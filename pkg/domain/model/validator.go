package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// CellValidator checks stored cell data against the field schema. Decoding
// never fails on stale data; the validator is what reports it.
type CellValidator struct {
	schema *config.FieldSchema
}

// NewCellValidator creates a new CellValidator with the given schema
func NewCellValidator(schema *config.FieldSchema) *CellValidator {
	return &CellValidator{
		schema: schema,
	}
}

// ValidateCell validates a stored cell.
// Cells of fields that are not in the schema are skipped, since fields may be
// removed after data was written.
func (v *CellValidator) ValidateCell(cell *Cell) error {
	fieldDef, ok := v.schema.Lookup(cell.FieldID)
	if !ok {
		return nil
	}

	if err := v.validateCellData(fieldDef, cell.Data); err != nil {
		return goerr.Wrap(err, "cell validation failed",
			goerr.V(FieldIDKey, cell.FieldID),
			goerr.V(RowIDKey, cell.RowID))
	}
	return nil
}

func (v *CellValidator) validateCellData(fieldDef config.FieldDefinition, data string) error {
	switch fieldDef.Type {
	case types.FieldTypeCheckbox:
		return v.validateCheckbox(data)
	case types.FieldTypeSingleSelect:
		return v.validateSingleSelect(fieldDef, data)
	case types.FieldTypeMultiSelect:
		return v.validateMultiSelect(fieldDef, data)
	default:
		return goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
			goerr.V(FieldIDKey, fieldDef.ID),
			goerr.V(ExpectedTypeKey, fieldDef.Type))
	}
}

// validateCheckbox validates a checkbox cell value
func (v *CellValidator) validateCheckbox(data string) error {
	if !IsCheckboxLiteral(data) {
		return goerr.Wrap(ErrInvalidCheckboxValue, "value is not a checkbox literal",
			goerr.V(CellDataKey, data))
	}
	return nil
}

// validateSingleSelect validates a single-select cell value
func (v *CellValidator) validateSingleSelect(fieldDef config.FieldDefinition, data string) error {
	ids := ParseSelectOptionIDs(data)
	if len(ids) > 1 {
		return goerr.Wrap(ErrTooManyOptions, "single-select cell holds more than one option",
			goerr.V(CellDataKey, data))
	}
	return v.validateOptionIDs(fieldDef, ids)
}

// validateMultiSelect validates a multi-select cell value
func (v *CellValidator) validateMultiSelect(fieldDef config.FieldDefinition, data string) error {
	return v.validateOptionIDs(fieldDef, ParseSelectOptionIDs(data))
}

func (v *CellValidator) validateOptionIDs(fieldDef config.FieldDefinition, ids SelectOptionIDs) error {
	validOptions := make(map[string]bool, len(fieldDef.Options))
	for _, opt := range fieldDef.Options {
		validOptions[opt.ID] = true
	}

	for _, optionID := range ids {
		if !validOptions[optionID] {
			return goerr.Wrap(ErrInvalidOptionID, "option ID not found in field definition",
				goerr.V(OptionIDKey, optionID),
				goerr.V(FieldIDKey, fieldDef.ID))
		}
	}
	return nil
}
