package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createProductForm struct {
	Name  string `validate:"required,max=200"`
	Slug  string `validate:"required"`
	Price int64  `validate:"gte=0"`
}

func TestValidate_Passes(t *testing.T) {
	form := createProductForm{Name: "Gold Band", Slug: "gold-band", Price: 129900}
	assert.NoError(t, Validate(form))
}

func TestValidate_CollectsFieldMessages(t *testing.T) {
	form := createProductForm{Price: -5}
	err := Validate(form)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Name"])
	assert.Equal(t, "is required", fields["Slug"])
	assert.Equal(t, "must be greater than or equal to 0", fields["Price"])
	assert.Contains(t, err.Error(), "field 'Name' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"Name":"Pearl Studs","Slug":"pearl-studs","Price":4500}`))

	var form createProductForm
	require.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "Pearl Studs", form.Name)
}

func TestDecodeAndValidate_BadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	var form createProductForm
	err := DecodeAndValidate(r, &form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
