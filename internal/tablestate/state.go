// Package tablestate synchronizes tabular view state (search, filters,
// sort, pagination, column visibility) with URL query parameters through an
// explicit bidirectional codec, so a reload or shared link reproduces the
// same view. Row selection is session-local and never encoded.
package tablestate

// SortEntry is one entry in the sort specification.
type SortEntry struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// Filter is a per-column filter predicate.
type Filter struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// State is the URL-mirrored view state of one table.
type State struct {
	Search    string
	PageIndex int // zero-based
	PageSize  int
	Sort      []SortEntry
	Filters   []Filter
	Columns   map[string]bool // column ID -> visible; nil means no overrides
}

// DefaultPageSize is used when a table does not configure its own.
const DefaultPageSize = 10

// DefaultState returns the state implied by an empty query string.
func DefaultState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Search:    "",
		PageIndex: 0,
		PageSize:  pageSize,
		Sort:      nil,
		Filters:   nil,
		Columns:   nil,
	}
}

// FilterValue returns the value of the filter for the given column ID, or
// ("", false) when no such filter is set.
func (s State) FilterValue(id string) (string, bool) {
	for _, f := range s.Filters {
		if f.ID == id {
			return f.Value, true
		}
	}
	return "", false
}

// HasActiveFilter reports whether a search string or any column filter is set.
func (s State) HasActiveFilter() bool {
	return s.Search != "" || len(s.Filters) > 0
}

// IsSorted reports whether any sort entry is active.
func (s State) IsSorted() bool {
	return len(s.Sort) > 0
}
