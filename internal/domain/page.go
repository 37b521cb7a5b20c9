package domain

import (
	"context"
	"time"
)

// ContentPage is a CMS-style page (about, care guide, blog post) composed of
// ordered sections.
type ContentPage struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Published bool          `json:"published"`
	Sections  []PageSection `json:"sections,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PageSection is one block of a content page.
type PageSection struct {
	ID       string  `json:"id"`
	PageID   string  `json:"page_id"`
	Heading  *string `json:"heading,omitempty"`
	Body     string  `json:"body"`
	ImageURL *string `json:"image_url,omitempty"`
	Position int     `json:"position"`
}

// CreatePageInput holds the parameters for creating a content page.
type CreatePageInput struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	Published bool   `json:"published"`
}

// UpdatePageInput holds the parameters for updating a content page.
type UpdatePageInput struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	Published *bool   `json:"published"`
}

// CreateSectionInput holds the parameters for adding a section to a page.
type CreateSectionInput struct {
	Heading  *string `json:"heading" validate:"omitempty,max=255"`
	Body     string  `json:"body" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	Position int     `json:"position" validate:"gte=0"`
}

// PageRepository defines content page persistence operations.
type PageRepository interface {
	// Create inserts a new content page.
	Create(ctx context.Context, page *ContentPage) error

	// GetByID retrieves a page with its sections by identifier.
	GetByID(ctx context.Context, id string) (*ContentPage, error)

	// GetBySlug retrieves a page with its sections by slug.
	GetBySlug(ctx context.Context, slug string) (*ContentPage, error)

	// Update modifies an existing page.
	Update(ctx context.Context, page *ContentPage) error

	// Delete removes a page and its sections.
	Delete(ctx context.Context, id string) error

	// ListPublished returns published pages without sections.
	ListPublished(ctx context.Context) ([]ContentPage, error)

	// ListAll returns all pages without sections.
	ListAll(ctx context.Context) ([]ContentPage, error)

	// AddSection inserts a section into a page.
	AddSection(ctx context.Context, section *PageSection) error

	// DeleteSection removes a section by its identifier.
	DeleteSection(ctx context.Context, id string) error
}
