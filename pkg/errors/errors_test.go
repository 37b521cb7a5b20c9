package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("product", "p-1")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "p-1")
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFound("category", "c-1")
	assert.True(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("load category: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error not found", NotFound("product", "x"), http.StatusNotFound},
		{"app error already exists", AlreadyExists("collection", "slug", "rings"), http.StatusConflict},
		{"app error invalid input", InvalidInput("name is required"), http.StatusBadRequest},
		{"app error unauthorized", Unauthorized("no session"), http.StatusUnauthorized},
		{"app error forbidden", Forbidden("admin only"), http.StatusForbidden},
		{"app error conflict", Conflict("modified concurrently"), http.StatusConflict},
		{"app error upload", UploadFailed(errors.New("bucket gone")), http.StatusBadGateway},
		{"bare sentinel", ErrInvalidInput, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("save: %w", ErrConflict), http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "load page")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "load page")
}

func TestUploadFailed_HidesCause(t *testing.T) {
	err := UploadFailed(errors.New("access denied for key secret"))
	assert.Equal(t, "file upload failed", err.Message)
	assert.True(t, errors.Is(err, ErrUploadFailed))
}
