package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wali-jeweller/storefront/internal/storage"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// MaxUploadSize is the largest accepted image upload, in bytes.
const MaxUploadSize = 10 << 20

// allowedImageTypes lists the content types accepted for image uploads.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// safePrefixPattern keeps upload key prefixes to path-safe characters.
var safePrefixPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// MediaService implements the business logic for image storage operations.
type MediaService struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(store storage.Storage, logger *slog.Logger) *MediaService {
	return &MediaService{
		storage: store,
		logger:  logger,
	}
}

// UploadImageInput holds the parameters for uploading an image.
type UploadImageInput struct {
	// Prefix groups objects in the bucket ("products", "pages").
	Prefix      string
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadImage validates the input and stores the image under a generated key.
func (s *MediaService) UploadImage(ctx context.Context, input *UploadImageInput) (*storage.UploadResult, error) {
	ext, ok := allowedImageTypes[strings.ToLower(input.ContentType)]
	if !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("content type %q is not allowed", input.ContentType))
	}

	if input.Size <= 0 {
		return nil, apperrors.InvalidInput("file size must be greater than zero")
	}
	if input.Size > MaxUploadSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("file size %d exceeds maximum allowed size of %d bytes", input.Size, MaxUploadSize))
	}

	if !safePrefixPattern.MatchString(input.Prefix) {
		return nil, apperrors.InvalidInput("prefix contains invalid characters")
	}

	key := fmt.Sprintf("%s/%s%s", input.Prefix, uuid.New().String(), ext)

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: input.ContentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	s.logger.InfoContext(ctx, "image uploaded",
		slog.String("key", result.Key),
		slog.String("original_name", path.Base(input.FileName)),
		slog.String("content_type", input.ContentType),
		slog.Int64("size", input.Size),
	)

	return result, nil
}

// DeleteImage removes an object from the bucket by its key.
func (s *MediaService) DeleteImage(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete from storage: %w", err)
	}

	s.logger.InfoContext(ctx, "image deleted",
		slog.String("key", key),
	)

	return nil
}

// ListImages returns the object keys under a prefix.
func (s *MediaService) ListImages(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list storage keys: %w", err)
	}
	return keys, nil
}

// PresignedURL returns a time-limited URL for private access to a key.
func (s *MediaService) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := s.storage.PresignedURL(ctx, key, ttl)
	if err != nil {
		return "", fmt.Errorf("presign url: %w", err)
	}
	return url, nil
}
