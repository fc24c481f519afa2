package model

import "strings"

// Persisted checkbox values written after an edit
const (
	CheckboxYes = "Yes"
	CheckboxNo  = "No"
)

// CheckboxCellData wraps the raw stored value of a checkbox cell
type CheckboxCellData string

// IsCheck reports whether the stored value reads as checked
func (d CheckboxCellData) IsCheck() bool {
	return ParseCheckboxValue(string(d))
}

// ParseCheckboxValue classifies a raw value. "1", "true" and "yes" are truthy
// regardless of case and surrounding spaces; every other value is falsy.
func ParseCheckboxValue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// IsCheckboxLiteral reports whether s is one of the recognized checkbox
// spellings, truthy or falsy
func IsCheckboxLiteral(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "0", "false", "no", "":
		return true
	default:
		return false
	}
}
