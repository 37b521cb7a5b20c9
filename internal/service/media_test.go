package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wali-jeweller/storefront/internal/storage/memory"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

func newTestMediaService() *MediaService {
	return NewMediaService(memory.New("https://cdn.example.com"), newTestLogger())
}

func TestUploadImage(t *testing.T) {
	svc := newTestMediaService()

	result, err := svc.UploadImage(context.Background(), &UploadImageInput{
		Prefix:      "products",
		FileName:    "ring.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Data:        strings.NewReader("fake bytes"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "products/"))
	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))
	assert.Contains(t, result.URL, result.Key)
}

func TestUploadImage_RejectsContentType(t *testing.T) {
	svc := newTestMediaService()

	_, err := svc.UploadImage(context.Background(), &UploadImageInput{
		Prefix:      "products",
		FileName:    "evil.html",
		ContentType: "text/html",
		Size:        64,
		Data:        strings.NewReader("<script>"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadImage_RejectsOversize(t *testing.T) {
	svc := newTestMediaService()

	_, err := svc.UploadImage(context.Background(), &UploadImageInput{
		Prefix:      "products",
		FileName:    "huge.png",
		ContentType: "image/png",
		Size:        MaxUploadSize + 1,
		Data:        strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadImage_RejectsUnsafePrefix(t *testing.T) {
	svc := newTestMediaService()

	_, err := svc.UploadImage(context.Background(), &UploadImageInput{
		Prefix:      "../secrets",
		FileName:    "x.png",
		ContentType: "image/png",
		Size:        64,
		Data:        strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDeleteImage(t *testing.T) {
	svc := newTestMediaService()
	ctx := context.Background()

	result, err := svc.UploadImage(ctx, &UploadImageInput{
		Prefix:      "pages",
		FileName:    "hero.webp",
		ContentType: "image/webp",
		Size:        128,
		Data:        strings.NewReader("x"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteImage(ctx, result.Key))

	keys, err := svc.ListImages(ctx, "pages/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
