package domain

import (
	"context"
	"time"
)

// Size is a ring/bracelet size option managed by the admin panel.
type Size struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSizeInput holds the parameters for creating a size.
type CreateSizeInput struct {
	Label     string `json:"label" validate:"required,min=1,max=32"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// UpdateSizeInput holds the parameters for updating a size.
type UpdateSizeInput struct {
	Label     *string `json:"label" validate:"omitempty,min=1,max=32"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}

// SizeRepository defines size persistence operations.
type SizeRepository interface {
	// Create inserts a new size.
	Create(ctx context.Context, size *Size) error

	// GetByID retrieves a size by its unique identifier.
	GetByID(ctx context.Context, id string) (*Size, error)

	// Update modifies an existing size.
	Update(ctx context.Context, size *Size) error

	// Delete removes a size by its identifier.
	Delete(ctx context.Context, id string) error

	// ListAll returns all sizes ordered by sort_order.
	ListAll(ctx context.Context) ([]Size, error)
}
