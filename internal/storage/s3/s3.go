// Package s3 implements storage.Storage on any S3-compatible bucket via the
// MinIO client.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wali-jeweller/storefront/internal/storage"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// Config holds S3 connection configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the URL prefix public objects are served from,
	// e.g. a CDN domain. Empty means URLs are built from the endpoint.
	PublicBaseURL string
}

// Storage implements storage.Storage for MinIO/S3 compatible storage.
type Storage struct {
	client *minio.Client
	cfg    Config
}

// New connects to the bucket and ensures it exists.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// Upload stores the object and returns its key and public URL. Failures are
// wrapped as upload errors so handlers surface a generic message.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, input.Key, input.Data, input.Size,
		minio.PutObjectOptions{ContentType: input.ContentType},
	)
	if err != nil {
		return nil, apperrors.UploadFailed(fmt.Errorf("put object %s: %w", input.Key, err))
	}

	url, err := s.GetURL(ctx, input.Key)
	if err != nil {
		return nil, err
	}

	return &storage.UploadResult{Key: input.Key, URL: url}, nil
}

// Delete removes the object.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// List returns the keys under the given prefix.
func (s *Storage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	for object := range s.client.ListObjects(ctx, s.cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, object.Err)
		}
		keys = append(keys, object.Key)
	}

	if keys == nil {
		keys = []string{}
	}

	return keys, nil
}

// PresignedURL returns a time-limited GET URL for the key.
func (s *Storage) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}
	return url.String(), nil
}

// GetURL returns the public URL for the key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	if s.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.cfg.PublicBaseURL, key), nil
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key), nil
}
