// Package service implements the business logic for the storefront and the
// back office, between the HTTP handlers and the repositories.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/event"
	"github.com/wali-jeweller/storefront/internal/tablestate"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
	"github.com/wali-jeweller/storefront/pkg/slug"
)

// Defaults for the related-products similarity search.
const (
	DefaultRelatedThreshold = 0.5
	DefaultRelatedLimit     = 8
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo     domain.ProductRepository
	images   domain.ImageRepository
	producer *event.Producer
	logger   *slog.Logger

	relatedThreshold float64
	relatedLimit     int
}

// NewProductService creates a new product service.
func NewProductService(repo domain.ProductRepository, images domain.ImageRepository, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:             repo,
		images:           images,
		producer:         producer,
		logger:           logger,
		relatedThreshold: DefaultRelatedThreshold,
		relatedLimit:     DefaultRelatedLimit,
	}
}

// SetRelatedTuning overrides the similarity threshold and result limit used
// by ListRelated. Values outside their valid ranges keep the defaults.
func (s *ProductService) SetRelatedTuning(threshold float64, limit int) {
	if threshold > 0 && threshold < 1 {
		s.relatedThreshold = threshold
	}
	if limit > 0 {
		s.relatedLimit = limit
	}
}

// CreateProduct creates a new product. New products start as drafts unless
// the input names a status.
func (s *ProductService) CreateProduct(ctx context.Context, input *domain.CreateProductInput) (*domain.Product, error) {
	status := input.Status
	if status == "" {
		status = domain.ProductStatusDraft
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		CategoryID:  input.CategoryID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if product.Slug == "" {
		return nil, apperrors.InvalidInput("product name must contain at least one letter or digit")
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.producer.PublishProductUpdated(ctx, event.ProductUpdatedData{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
	})

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID, with images.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return s.attachImages(ctx, product), nil
}

// GetProductBySlug retrieves a product by its slug, with images.
func (s *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	product, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return s.attachImages(ctx, product), nil
}

// attachImages loads a product's images. A failed image load degrades to an
// empty gallery rather than failing the product read.
func (s *ProductService) attachImages(ctx context.Context, product *domain.Product) *domain.Product {
	images, err := s.images.ListByProduct(ctx, product.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load product images",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		images = []domain.Image{}
	}
	product.Images = images
	return product
}

// ListProducts returns a page of products driven by the admin table state.
func (s *ProductService) ListProducts(ctx context.Context, state tablestate.State) (*domain.ProductList, error) {
	list, err := s.repo.List(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// ListByCategory returns the active products of a category, resolved by the
// category slug.
func (s *ProductService) ListByCategory(ctx context.Context, category *domain.Category) ([]domain.Product, error) {
	products, err := s.repo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

// ListRelated returns products similar to the given one, ordered by
// descending cosine similarity of their stored embeddings.
func (s *ProductService) ListRelated(ctx context.Context, productID string) ([]domain.RelatedProduct, error) {
	related, err := s.repo.ListRelated(ctx, productID, s.relatedThreshold, s.relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	return related, nil
}

// UpdateProduct applies partial updates to an existing product. Renaming a
// product regenerates its slug.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *domain.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
		if product.Slug == "" {
			return nil, apperrors.InvalidInput("product name must contain at least one letter or digit")
		}
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.producer.PublishProductUpdated(ctx, event.ProductUpdatedData{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
	})

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.producer.PublishProductDeleted(ctx, id)

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

// AddImage attaches an uploaded image to a product.
func (s *ProductService) AddImage(ctx context.Context, productID, url string, alt *string, position int) (*domain.Image, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("get product for image: %w", err)
	}

	image := &domain.Image{
		ID:        uuid.New().String(),
		ProductID: productID,
		URL:       url,
		Alt:       alt,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.images.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create product image: %w", err)
	}

	return image, nil
}

// DeleteImage removes an image row by its ID.
func (s *ProductService) DeleteImage(ctx context.Context, id string) error {
	if err := s.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	return nil
}
