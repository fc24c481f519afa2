package types

// FieldID represents the unique identifier for a grid field
type FieldID string

// FieldType represents the type tag of a grid field. The set of field types
// handled by the cell codec is closed.
type FieldType string

const (
	FieldTypeCheckbox     FieldType = "checkbox"
	FieldTypeSingleSelect FieldType = "single-select"
	FieldTypeMultiSelect  FieldType = "multi-select"
)

// AllFieldTypes returns all valid field types
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeCheckbox,
		FieldTypeSingleSelect,
		FieldTypeMultiSelect,
	}
}

// IsValid checks if the field type is valid
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeCheckbox,
		FieldTypeSingleSelect,
		FieldTypeMultiSelect:
		return true
	default:
		return false
	}
}

// IsSelectOption reports whether cells of this type hold option ids
func (t FieldType) IsSelectOption() bool {
	return t == FieldTypeSingleSelect || t == FieldTypeMultiSelect
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}
