package tablestate

import (
	"net/url"
	"sync"
)

// Sink receives the encoded query values after every state change. In the
// HTTP handlers this writes the canonical query string back to the response;
// in tests it records the published values.
type Sink func(url.Values)

// Coordinator binds one table's state to a URL sink. All mutations republish
// the encoded query values; row selection stays local and is never encoded.
type Coordinator struct {
	mu            sync.Mutex
	state         State
	selection     map[string]bool
	filteredCount int

	codec Codec
	sink  Sink
}

// NewCoordinator creates a coordinator with the given default page size,
// initialized from the provided query values. A nil sink disables publishing.
func NewCoordinator(pageSize int, initial url.Values, sink Sink) *Coordinator {
	codec := Codec{PageSize: pageSize}
	return &Coordinator{
		state:     codec.Decode(initial),
		selection: make(map[string]bool),
		codec:     codec,
		sink:      sink,
	}
}

// State returns a copy of the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyState()
}

func (c *Coordinator) copyState() State {
	s := c.state
	s.Sort = append([]SortEntry(nil), c.state.Sort...)
	s.Filters = append([]Filter(nil), c.state.Filters...)
	if c.state.Columns != nil {
		s.Columns = make(map[string]bool, len(c.state.Columns))
		for k, v := range c.state.Columns {
			s.Columns[k] = v
		}
	}
	return s
}

// Query returns the encoded query values for the current state.
func (c *Coordinator) Query() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codec.Encode(c.state)
}

// publish must be called with the lock held.
func (c *Coordinator) publish() {
	if c.sink != nil {
		c.sink(c.codec.Encode(c.state))
	}
}

// SetFilteredCount records the total row count after filtering, used for
// page clamping. The current page is re-clamped against the new count.
func (c *Coordinator) SetFilteredCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	c.filteredCount = n
	c.state.PageIndex = c.clampPage(c.state.PageIndex)
}

// FilteredCount returns the recorded filtered-row count.
func (c *Coordinator) FilteredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredCount
}

// PageCount returns the number of pages implied by the filtered-row count
// and page size. It is never below 1.
func (c *Coordinator) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageCount()
}

func (c *Coordinator) pageCount() int {
	if c.filteredCount <= 0 || c.state.PageSize <= 0 {
		return 1
	}
	pages := (c.filteredCount + c.state.PageSize - 1) / c.state.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (c *Coordinator) clampPage(page int) int {
	if page < 0 {
		return 0
	}
	if max := c.pageCount() - 1; page > max {
		return max
	}
	return page
}

// SetSearch sets the global search string and resets the page index.
func (c *Coordinator) SetSearch(search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Search = search
	c.state.PageIndex = 0
	c.publish()
}

// SetFilter sets the filter value for a column. An empty value removes the
// filter. The page index resets so results stay in range.
func (c *Coordinator) SetFilter(id, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.state.Filters {
		if c.state.Filters[i].ID == id {
			idx = i
			break
		}
	}

	switch {
	case value == "" && idx >= 0:
		c.state.Filters = append(c.state.Filters[:idx], c.state.Filters[idx+1:]...)
	case value != "" && idx >= 0:
		c.state.Filters[idx].Value = value
	case value != "":
		c.state.Filters = append(c.state.Filters, Filter{ID: id, Value: value})
	}

	c.state.PageIndex = 0
	c.publish()
}

// SetSort replaces the sort specification.
func (c *Coordinator) SetSort(sort []SortEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = append([]SortEntry(nil), sort...)
	c.publish()
}

// ToggleSort cycles the sort for a column: none -> ascending -> descending
// -> none. Toggling a column replaces any other sort entries.
func (c *Coordinator) ToggleSort(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current *SortEntry
	if len(c.state.Sort) == 1 && c.state.Sort[0].ID == id {
		current = &c.state.Sort[0]
	}

	switch {
	case current == nil:
		c.state.Sort = []SortEntry{{ID: id, Desc: false}}
	case !current.Desc:
		c.state.Sort = []SortEntry{{ID: id, Desc: true}}
	default:
		c.state.Sort = nil
	}
	c.publish()
}

// GoToPage moves to page n, clamped into [0, PageCount-1].
func (c *Coordinator) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PageIndex = c.clampPage(n)
	c.publish()
}

// ChangePageSize sets the page size and unconditionally resets the page
// index to 0.
func (c *Coordinator) ChangePageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		n = c.codec.defaultPageSize()
	}
	c.state.PageSize = n
	c.state.PageIndex = 0
	c.publish()
}

// ToggleColumn flips the visibility of a column.
func (c *Coordinator) ToggleColumn(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Columns == nil {
		c.state.Columns = make(map[string]bool)
	}
	visible, ok := c.state.Columns[id]
	if !ok {
		// No override yet: columns default to visible, so the first toggle hides.
		c.state.Columns[id] = false
	} else {
		c.state.Columns[id] = !visible
	}
	c.publish()
}

// SelectRow marks a row as selected. Selection is never published to the sink.
func (c *Coordinator) SelectRow(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection[key] = true
}

// DeselectRow removes a row from the selection.
func (c *Coordinator) DeselectRow(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.selection, key)
}

// ToggleRow flips a row's selected state.
func (c *Coordinator) ToggleRow(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection[key] {
		delete(c.selection, key)
	} else {
		c.selection[key] = true
	}
}

// IsSelected reports whether a row is selected.
func (c *Coordinator) IsSelected(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection[key]
}

// SelectedCount returns the number of selected rows.
func (c *Coordinator) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selection)
}

// ClearSelection drops all row selections without touching the URL state.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = make(map[string]bool)
}

// HasActiveFilter reports whether a search string or any column filter is set.
func (c *Coordinator) HasActiveFilter() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasActiveFilter()
}

// IsSorted reports whether any sort entry is active.
func (c *Coordinator) IsSorted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.IsSorted()
}

// ResetFilters clears the search string, column filters, and page index.
// Sort and column visibility are kept.
func (c *Coordinator) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Search = ""
	c.state.Filters = nil
	c.state.PageIndex = 0
	c.publish()
}

// ResetTable clears everything: filters, search, page, sort, column
// visibility, and row selection. Page size returns to the default.
func (c *Coordinator) ResetTable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = DefaultState(c.codec.defaultPageSize())
	c.selection = make(map[string]bool)
	c.publish()
}
