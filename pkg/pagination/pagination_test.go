package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	p := FromRequest(httptest.NewRequest("GET", "/products", nil))

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 24, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Valid(t *testing.T) {
	p := FromRequest(httptest.NewRequest("GET", "/products?page=3&per_page=12", nil))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 12, p.PerPage)
	assert.Equal(t, 24, p.Offset)
}

func TestFromRequest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"non numeric page", "/products?page=abc"},
		{"negative page", "/products?page=-2"},
		{"zero per_page", "/products?per_page=0"},
		{"oversized per_page", "/products?per_page=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, DefaultParams().Page, p.Page)
			assert.Equal(t, DefaultParams().PerPage, p.PerPage)
		})
	}
}

func TestNewResult(t *testing.T) {
	params := Params{Page: 2, PerPage: 10}
	res := NewResult([]int{1, 2, 3}, 25, params)

	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestNewResult_NilData(t *testing.T) {
	res := NewResult[string](nil, 0, DefaultParams())
	assert.NotNil(t, res.Data)
	assert.Zero(t, res.TotalPages)
	assert.False(t, res.HasNext)
}
