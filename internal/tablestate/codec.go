package tablestate

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Query parameter names.
const (
	paramSearch  = "search"
	paramPage    = "page"
	paramSize    = "size"
	paramSort    = "sort"
	paramFilters = "filters"
	paramColumns = "columns"
)

// Codec converts State to and from URL query values. Default-valued fields
// are omitted on encode so URLs stay clean; decoding is defensive and never
// errors, normalizing malformed values to their defaults.
type Codec struct {
	// PageSize is the default page size for this table. Zero means
	// DefaultPageSize.
	PageSize int
}

func (c Codec) defaultPageSize() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// Encode serializes the state into query values, omitting every field that
// equals its default. Row selection is never encoded.
func (c Codec) Encode(s State) url.Values {
	values := url.Values{}

	if s.Search != "" {
		values.Set(paramSearch, s.Search)
	}
	if s.PageIndex != 0 {
		values.Set(paramPage, strconv.Itoa(s.PageIndex))
	}
	if s.PageSize != c.defaultPageSize() && s.PageSize > 0 {
		values.Set(paramSize, strconv.Itoa(s.PageSize))
	}
	if len(s.Sort) > 0 {
		data, err := json.Marshal(s.Sort)
		if err == nil {
			values.Set(paramSort, string(data))
		}
	}
	if len(s.Filters) > 0 {
		data, err := json.Marshal(s.Filters)
		if err == nil {
			values.Set(paramFilters, string(data))
		}
	}
	if len(s.Columns) > 0 {
		data, err := json.Marshal(s.Columns)
		if err == nil {
			values.Set(paramColumns, string(data))
		}
	}

	return values
}

// Decode parses query values into a State. Absent parameters take their
// documented defaults; malformed values are normalized rather than rejected.
// A single JSON object where an array is expected is coerced into a
// one-element array.
func (c Codec) Decode(values url.Values) State {
	s := DefaultState(c.defaultPageSize())

	s.Search = values.Get(paramSearch)

	if raw := values.Get(paramPage); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			s.PageIndex = page
		}
	}

	if raw := values.Get(paramSize); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			s.PageSize = size
		}
	}

	if raw := values.Get(paramSort); raw != "" {
		s.Sort = decodeArray[SortEntry](raw)
	}

	if raw := values.Get(paramFilters); raw != "" {
		s.Filters = decodeArray[Filter](raw)
	}

	if raw := values.Get(paramColumns); raw != "" {
		var columns map[string]bool
		if err := json.Unmarshal([]byte(raw), &columns); err == nil && len(columns) > 0 {
			s.Columns = columns
		}
	}

	return s
}

// decodeArray parses a JSON array of T. A single object is coerced into a
// one-element array; anything else malformed yields nil.
func decodeArray[T any](raw string) []T {
	var arr []T
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		if len(arr) == 0 {
			return nil
		}
		return arr
	}

	var single T
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return []T{single}
	}

	return nil
}
