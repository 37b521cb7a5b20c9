package domain

import (
	"context"
	"time"

	"github.com/wali-jeweller/storefront/internal/tablestate"
)

// Product statuses.
const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

// Product represents a catalog entry.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	PriceCents   int64     `json:"price_cents"`
	CategoryID   *string   `json:"category_id,omitempty"`
	Status       string    `json:"status"`
	Images       []Image   `json:"images,omitempty"`
	HasEmbedding bool      `json:"has_embedding"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Image is one product or page image stored in object storage.
type Image struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	Alt       *string   `json:"alt,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// RelatedProduct is one similarity-search result.
type RelatedProduct struct {
	Product
	Similarity float64 `json:"similarity"`
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents" validate:"gte=0"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft active archived"`
}

// UpdateProductInput holds the parameters for updating a product.
type UpdateProductInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft active archived"`
}

// ProductList is a page of products plus the total filtered-row count.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	// PageIndex is the page actually served, after clamping the requested
	// page to the filtered row count.
	PageIndex int `json:"page_index"`
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id string) error

	// List returns a page of products driven by table view state: filters
	// map to WHERE clauses, sort to ORDER BY, page/size to LIMIT/OFFSET.
	List(ctx context.Context, state tablestate.State) (*ProductList, error)

	// ListByCategory returns active products in a category.
	ListByCategory(ctx context.Context, categoryID string) ([]Product, error)

	// ListRelated returns up to limit products whose stored embeddings
	// exceed the cosine-similarity threshold against the source product's
	// embedding, ordered by descending similarity.
	ListRelated(ctx context.Context, productID string, threshold float64, limit int) ([]RelatedProduct, error)

	// UpdateEmbedding stores the embedding vector for a product.
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

// ImageRepository defines image persistence operations.
type ImageRepository interface {
	// Create inserts a new image row.
	Create(ctx context.Context, image *Image) error

	// ListByProduct returns a product's images ordered by position.
	ListByProduct(ctx context.Context, productID string) ([]Image, error)

	// Delete removes an image row by its identifier.
	Delete(ctx context.Context, id string) error
}
