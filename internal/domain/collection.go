package domain

import (
	"context"
	"time"
)

// Collection is a curated, ordered grouping of products (e.g. "Bridal",
// "Summer 2026").
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCollectionInput holds the parameters for creating a collection.
type CreateCollectionInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// UpdateCollectionInput holds the parameters for updating a collection.
type UpdateCollectionInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty"`
}

// CollectionRepository defines collection persistence operations, including
// the collection-product link table.
type CollectionRepository interface {
	// Create inserts a new collection.
	Create(ctx context.Context, collection *Collection) error

	// GetByID retrieves a collection by its unique identifier.
	GetByID(ctx context.Context, id string) (*Collection, error)

	// GetBySlug retrieves a collection by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*Collection, error)

	// Update modifies an existing collection.
	Update(ctx context.Context, collection *Collection) error

	// Delete removes a collection and its product links.
	Delete(ctx context.Context, id string) error

	// ListAll returns all collections ordered by name.
	ListAll(ctx context.Context) ([]Collection, error)

	// AddProduct links a product into the collection at the given position.
	// Linking an already-linked product updates its position.
	AddProduct(ctx context.Context, collectionID, productID string, position int) error

	// RemoveProduct unlinks a product from the collection.
	RemoveProduct(ctx context.Context, collectionID, productID string) error

	// ListProducts returns the collection's products ordered by position.
	ListProducts(ctx context.Context, collectionID string) ([]Product, error)
}
