package domain

import (
	"context"
	"time"
)

// Category represents a product category (rings, necklaces, bracelets...).
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order" validate:"gte=0"`
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	// Create inserts a new category.
	Create(ctx context.Context, category *Category) error

	// GetByID retrieves a category by its unique identifier.
	GetByID(ctx context.Context, id string) (*Category, error)

	// GetBySlug retrieves a category by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// Update modifies an existing category.
	Update(ctx context.Context, category *Category) error

	// Delete removes a category by its identifier.
	Delete(ctx context.Context, id string) error

	// ListAll returns all categories ordered by sort_order and name.
	ListAll(ctx context.Context) ([]Category, error)
}
