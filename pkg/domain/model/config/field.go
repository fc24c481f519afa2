package config

import (
	"github.com/google/uuid"
	"github.com/secmon-lab/gridcell/pkg/domain/types"
)

// SelectOption is an option available for single-select and multi-select fields
type SelectOption struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Color types.SelectOptionColor `json:"color"`
}

// NewSelectOption creates an option with a freshly generated ID and the
// default color
func NewSelectOption(name string) SelectOption {
	return SelectOption{
		ID:    uuid.New().String(),
		Name:  name,
		Color: types.SelectOptionColorPurple,
	}
}

// FieldDefinition defines a grid field's schema
type FieldDefinition struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         types.FieldType `json:"type"`
	Description  string          `json:"description,omitempty"`
	Options      []SelectOption  `json:"options,omitempty"` // Only used for select types
	DisableColor bool            `json:"disable_color,omitempty"`
}

// FieldSchema holds the complete field configuration. It is treated as an
// immutable snapshot once loaded.
type FieldSchema struct {
	Fields []FieldDefinition `json:"fields"`
}

// Lookup returns the field definition with the given ID
func (s *FieldSchema) Lookup(fieldID string) (FieldDefinition, bool) {
	if s == nil {
		return FieldDefinition{}, false
	}
	for _, fd := range s.Fields {
		if fd.ID == fieldID {
			return fd, true
		}
	}
	return FieldDefinition{}, false
}

// OptionIDs returns the IDs of the field's options in registry order
func (f FieldDefinition) OptionIDs() []string {
	ids := make([]string, len(f.Options))
	for i, opt := range f.Options {
		ids[i] = opt.ID
	}
	return ids
}
