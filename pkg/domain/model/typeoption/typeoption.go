// Package typeoption implements the per-field-type cell codec: decoding a
// stored cell value, applying an edit changeset to it, and evaluating filters
// against decoded cells. The set of field types is closed and dispatched by
// types.FieldType.
package typeoption

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/gridcell/pkg/domain/model"
	"github.com/secmon-lab/gridcell/pkg/domain/model/config"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// ErrUnsupportedFieldType is returned for field types without a codec
var ErrUnsupportedFieldType = goerr.New("unsupported field type")

// DecodedCell is the structured form of a cell. Exactly one of Checkbox and
// SelectOption is set, according to FieldType.
type DecodedCell struct {
	FieldType    types.FieldType             `json:"field_type"`
	Checkbox     *CheckboxCell               `json:"checkbox,omitempty"`
	SelectOption *model.SelectOptionCellData `json:"select_option,omitempty"`
}

// CheckboxCell is the decoded view of a checkbox cell
type CheckboxCell struct {
	Data    model.CheckboxCellData `json:"data"`
	Checked bool                   `json:"checked"`
}

// TypeOption is the codec of one field type
type TypeOption interface {
	FieldType() types.FieldType

	// DecodeCellData decodes stored cell data. decodedFieldType is the type
	// the data was written under; data written under another type decodes to
	// an empty value.
	DecodeCellData(data string, decodedFieldType types.FieldType) *DecodedCell

	// ApplyChangeset returns the new stored value. previous is nil when the
	// cell has never been written.
	ApplyChangeset(changeset string, previous *model.Cell) (string, error)

	// ApplyFilter reports whether the cell passes the filter.
	ApplyFilter(data string, decodedFieldType types.FieldType, filter *model.FilterRevision) bool
}

var (
	_ TypeOption = &CheckboxTypeOption{}
	_ TypeOption = &SingleSelectTypeOption{}
	_ TypeOption = &MultiSelectTypeOption{}
)

// New builds the codec for a field definition
func New(field config.FieldDefinition) (TypeOption, error) {
	switch field.Type {
	case types.FieldTypeCheckbox:
		return &CheckboxTypeOption{}, nil
	case types.FieldTypeSingleSelect:
		return NewSingleSelectTypeOption(field.Options, field.DisableColor), nil
	case types.FieldTypeMultiSelect:
		return NewMultiSelectTypeOption(field.Options, field.DisableColor), nil
	default:
		return nil, goerr.Wrap(ErrUnsupportedFieldType, "no type option for field",
			goerr.V(model.FieldIDKey, field.ID),
			goerr.V(model.ExpectedTypeKey, field.Type))
	}
}
