package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/storage"
)

func TestStorage_UploadAndGetURL(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	result, err := s.Upload(ctx, &storage.UploadInput{
		Key:         "products/ring.jpg",
		ContentType: "image/jpeg",
		Size:        1024,
		Data:        strings.NewReader("fake bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "products/ring.jpg", result.Key)
	assert.Equal(t, "https://cdn.example.com/media/products/ring.jpg", result.URL)

	url, err := s.GetURL(ctx, "products/ring.jpg")
	require.NoError(t, err)
	assert.Equal(t, result.URL, url)
}

func TestStorage_ListByPrefix(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	for _, key := range []string{"products/a.jpg", "products/b.jpg", "pages/hero.jpg"} {
		_, err := s.Upload(ctx, &storage.UploadInput{Key: key, Data: strings.NewReader("x")})
		require.NoError(t, err)
	}

	keys, err := s.List(ctx, "products/")
	require.NoError(t, err)
	assert.Equal(t, []string{"products/a.jpg", "products/b.jpg"}, keys)

	keys, err = s.List(ctx, "missing/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStorage_Delete(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	_, err := s.Upload(ctx, &storage.UploadInput{Key: "k", Data: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "k"))
	assert.Error(t, s.Delete(ctx, "k"))

	_, err = s.GetURL(ctx, "k")
	assert.Error(t, err)
}

func TestStorage_PresignedURL(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	_, err := s.Upload(ctx, &storage.UploadInput{Key: "k", Data: strings.NewReader("x")})
	require.NoError(t, err)

	url, err := s.PresignedURL(ctx, "k", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "expires=900")
}
