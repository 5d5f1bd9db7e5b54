package models

import "errors"

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Preferences holds the list view settings a user last chose.
type Preferences struct {
	SortKey       string        `json:"sortKey"`
	SortDirection SortDirection `json:"sortDirection"`
	ShowInactive  bool          `json:"showInactive"`
	ShowOverdue   bool          `json:"showOverdue"`
	ShowCompleted bool          `json:"showCompleted"`
}

// DefaultPreferences sorts by title ascending with every toggle off.
func DefaultPreferences() Preferences {
	return Preferences{SortKey: "title", SortDirection: SortAsc}
}

// Validate checks the sort direction. Sort keys are checked by the caller
// that knows which keys exist.
func (p *Preferences) Validate() error {
	if p.SortDirection != SortAsc && p.SortDirection != SortDesc {
		return errors.New("sort direction must be 'asc' or 'desc'")
	}
	if p.SortKey == "" {
		return errors.New("sort key is required")
	}
	return nil
}
