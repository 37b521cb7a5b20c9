package tablestate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodec_EncodeOmitsDefaults(t *testing.T) {
	codec := Codec{PageSize: 10}

	values := codec.Encode(DefaultState(10))
	assert.Empty(t, values)

	// Round-trip of a default state never introduces explicit parameters.
	decoded := codec.Decode(values)
	assert.Empty(t, codec.Encode(decoded))
}

func TestCodec_EncodeNonDefaults(t *testing.T) {
	codec := Codec{PageSize: 10}
	state := State{
		Search:    "ring",
		PageIndex: 2,
		PageSize:  25,
		Sort:      []SortEntry{{ID: "price", Desc: true}},
		Filters:   []Filter{{ID: "category", Value: "rings"}},
		Columns:   map[string]bool{"sku": false},
	}

	values := codec.Encode(state)
	assert.Equal(t, "ring", values.Get("search"))
	assert.Equal(t, "2", values.Get("page"))
	assert.Equal(t, "25", values.Get("size"))
	assert.JSONEq(t, `[{"id":"price","desc":true}]`, values.Get("sort"))
	assert.JSONEq(t, `[{"id":"category","value":"rings"}]`, values.Get("filters"))
	assert.JSONEq(t, `{"sku":false}`, values.Get("columns"))
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := Codec{PageSize: 10}
	state := State{
		Search:    "gold",
		PageIndex: 3,
		PageSize:  50,
		Sort:      []SortEntry{{ID: "name", Desc: false}},
		Filters:   []Filter{{ID: "status", Value: "active"}},
		Columns:   map[string]bool{"image": true},
	}

	got := codec.Decode(codec.Encode(state))
	assert.Equal(t, state, got)
}

func TestCodec_DecodeDefaults(t *testing.T) {
	codec := Codec{PageSize: 20}
	state := codec.Decode(url.Values{})

	assert.Equal(t, "", state.Search)
	assert.Equal(t, 0, state.PageIndex)
	assert.Equal(t, 20, state.PageSize)
	assert.Nil(t, state.Sort)
	assert.Nil(t, state.Filters)
	assert.Nil(t, state.Columns)
}

func TestCodec_DecodeMalformedValues(t *testing.T) {
	codec := Codec{PageSize: 10}

	tests := []struct {
		name   string
		values url.Values
		check  func(t *testing.T, s State)
	}{
		{
			name:   "non-numeric page",
			values: url.Values{"page": {"abc"}},
			check:  func(t *testing.T, s State) { assert.Equal(t, 0, s.PageIndex) },
		},
		{
			name:   "negative page",
			values: url.Values{"page": {"-4"}},
			check:  func(t *testing.T, s State) { assert.Equal(t, 0, s.PageIndex) },
		},
		{
			name:   "zero size falls back to default",
			values: url.Values{"size": {"0"}},
			check:  func(t *testing.T, s State) { assert.Equal(t, 10, s.PageSize) },
		},
		{
			name:   "non-numeric size",
			values: url.Values{"size": {"lots"}},
			check:  func(t *testing.T, s State) { assert.Equal(t, 10, s.PageSize) },
		},
		{
			name:   "garbage sort",
			values: url.Values{"sort": {"[[["}},
			check:  func(t *testing.T, s State) { assert.Nil(t, s.Sort) },
		},
		{
			name:   "garbage filters",
			values: url.Values{"filters": {"true"}},
			check:  func(t *testing.T, s State) { assert.Nil(t, s.Filters) },
		},
		{
			name:   "garbage columns",
			values: url.Values{"columns": {"[1,2]"}},
			check:  func(t *testing.T, s State) { assert.Nil(t, s.Columns) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, codec.Decode(tt.values))
		})
	}
}

func TestCodec_DecodeObjectCoercedToArray(t *testing.T) {
	codec := Codec{PageSize: 10}

	state := codec.Decode(url.Values{
		"filters": {`{"id":"category","value":"rings"}`},
		"sort":    {`{"id":"price","desc":true}`},
	})

	assert.Equal(t, []Filter{{ID: "category", Value: "rings"}}, state.Filters)
	assert.Equal(t, []SortEntry{{ID: "price", Desc: true}}, state.Sort)
}

func TestCodec_EncodeCustomDefaultSize(t *testing.T) {
	codec := Codec{PageSize: 25}

	state := DefaultState(25)
	assert.Empty(t, codec.Encode(state))

	state.PageSize = 10
	assert.Equal(t, "10", codec.Encode(state).Get("size"))
}
