package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wali-jeweller/storefront/internal/domain"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
	"github.com/wali-jeweller/storefront/pkg/slug"
)

// CollectionService implements the business logic for curated collections.
type CollectionService struct {
	repo   domain.CollectionRepository
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(repo domain.CollectionRepository, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		repo:   repo,
		logger: logger,
	}
}

// CreateCollection creates a new collection.
func (s *CollectionService) CreateCollection(ctx context.Context, input *domain.CreateCollectionInput) (*domain.Collection, error) {
	now := time.Now().UTC()
	collection := &domain.Collection{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if collection.Slug == "" {
		return nil, apperrors.InvalidInput("collection name must contain at least one letter or digit")
	}

	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.logger.InfoContext(ctx, "collection created",
		slog.String("collection_id", collection.ID),
		slog.String("slug", collection.Slug),
	)

	return collection, nil
}

// GetCollection retrieves a collection by its ID.
func (s *CollectionService) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	collection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection by id: %w", err)
	}
	return collection, nil
}

// GetCollectionBySlug retrieves a collection by its slug.
func (s *CollectionService) GetCollectionBySlug(ctx context.Context, collectionSlug string) (*domain.Collection, error) {
	collection, err := s.repo.GetBySlug(ctx, collectionSlug)
	if err != nil {
		return nil, fmt.Errorf("get collection by slug: %w", err)
	}
	return collection, nil
}

// ListCollections returns all collections.
func (s *CollectionService) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	collections, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// UpdateCollection applies partial updates to an existing collection.
func (s *CollectionService) UpdateCollection(ctx context.Context, id string, input *domain.UpdateCollectionInput) (*domain.Collection, error) {
	collection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get collection for update: %w", err)
	}

	if input.Name != nil {
		collection.Name = *input.Name
		collection.Slug = slug.Generate(*input.Name)
		if collection.Slug == "" {
			return nil, apperrors.InvalidInput("collection name must contain at least one letter or digit")
		}
	}
	if input.Description != nil {
		collection.Description = input.Description
	}
	if input.ImageURL != nil {
		collection.ImageURL = input.ImageURL
	}
	collection.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, collection); err != nil {
		return nil, fmt.Errorf("update collection: %w", err)
	}

	s.logger.InfoContext(ctx, "collection updated",
		slog.String("collection_id", collection.ID),
		slog.String("slug", collection.Slug),
	)

	return collection, nil
}

// DeleteCollection removes a collection and its product links.
func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	s.logger.InfoContext(ctx, "collection deleted",
		slog.String("collection_id", id),
	)

	return nil
}

// AddProduct links a product into a collection at the given position.
// Re-adding an already-linked product moves it instead of failing.
func (s *CollectionService) AddProduct(ctx context.Context, collectionID, productID string, position int) error {
	if position < 0 {
		return apperrors.InvalidInput("position must not be negative")
	}

	if err := s.repo.AddProduct(ctx, collectionID, productID, position); err != nil {
		return fmt.Errorf("add product to collection: %w", err)
	}

	s.logger.InfoContext(ctx, "product added to collection",
		slog.String("collection_id", collectionID),
		slog.String("product_id", productID),
		slog.Int("position", position),
	)

	return nil
}

// RemoveProduct unlinks a product from a collection.
func (s *CollectionService) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	if err := s.repo.RemoveProduct(ctx, collectionID, productID); err != nil {
		return fmt.Errorf("remove product from collection: %w", err)
	}

	s.logger.InfoContext(ctx, "product removed from collection",
		slog.String("collection_id", collectionID),
		slog.String("product_id", productID),
	)

	return nil
}

// ListProducts returns the collection's products ordered by curated position.
func (s *CollectionService) ListProducts(ctx context.Context, collectionID string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection products: %w", err)
	}
	return products, nil
}
