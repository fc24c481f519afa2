package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// SelectOptionCellChangeset is an edit instruction for a select cell. Both
// fields are optional and may be combined in one changeset.
type SelectOptionCellChangeset struct {
	InsertOptionID *string `json:"insert_option_id,omitempty"`
	DeleteOptionID *string `json:"delete_option_id,omitempty"`
}

// NewInsertChangeset builds a changeset inserting (or toggling) one option
func NewInsertChangeset(optionID string) *SelectOptionCellChangeset {
	return &SelectOptionCellChangeset{InsertOptionID: &optionID}
}

// NewDeleteChangeset builds a changeset removing one option
func NewDeleteChangeset(optionID string) *SelectOptionCellChangeset {
	return &SelectOptionCellChangeset{DeleteOptionID: &optionID}
}

// ParseSelectOptionCellChangeset decodes the changeset transport encoding.
// Anything other than a JSON object fails with ErrInvalidChangeset.
func ParseSelectOptionCellChangeset(data string) (*SelectOptionCellChangeset, error) {
	var changeset *SelectOptionCellChangeset
	if err := json.Unmarshal([]byte(data), &changeset); err != nil {
		return nil, goerr.Wrap(ErrInvalidChangeset, "failed to parse select option changeset",
			goerr.V(ChangesetKey, data),
			goerr.V(CauseKey, err.Error()))
	}
	if changeset == nil {
		return nil, goerr.Wrap(ErrInvalidChangeset, "select option changeset is null",
			goerr.V(ChangesetKey, data))
	}
	return changeset, nil
}

// Insert returns the option ID to insert. Empty IDs count as absent.
func (c *SelectOptionCellChangeset) Insert() (string, bool) {
	if c == nil || c.InsertOptionID == nil || *c.InsertOptionID == "" {
		return "", false
	}
	return *c.InsertOptionID, true
}

// Delete returns the option ID to delete. Empty IDs count as absent.
func (c *SelectOptionCellChangeset) Delete() (string, bool) {
	if c == nil || c.DeleteOptionID == nil || *c.DeleteOptionID == "" {
		return "", false
	}
	return *c.DeleteOptionID, true
}

// String returns the transport encoding of the changeset
func (c *SelectOptionCellChangeset) String() string {
	raw, err := json.Marshal(c)
	if err != nil {
		// A struct of two string pointers always marshals
		return "{}"
	}
	return string(raw)
}
