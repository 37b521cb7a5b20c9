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

// ContentService implements the business logic for CMS-style content pages.
type ContentService struct {
	repo   domain.PageRepository
	logger *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(repo domain.PageRepository, logger *slog.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		logger: logger,
	}
}

// CreatePage creates a new content page. Pages start unpublished unless the
// input says otherwise.
func (s *ContentService) CreatePage(ctx context.Context, input *domain.CreatePageInput) (*domain.ContentPage, error) {
	now := time.Now().UTC()
	page := &domain.ContentPage{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Slug:      slug.Generate(input.Title),
		Published: input.Published,
		Sections:  []domain.PageSection{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if page.Slug == "" {
		return nil, apperrors.InvalidInput("page title must contain at least one letter or digit")
	}

	if err := s.repo.Create(ctx, page); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	s.logger.InfoContext(ctx, "page created",
		slog.String("page_id", page.ID),
		slog.String("slug", page.Slug),
	)

	return page, nil
}

// GetPage retrieves a page with its sections by ID.
func (s *ContentService) GetPage(ctx context.Context, id string) (*domain.ContentPage, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get page by id: %w", err)
	}
	return page, nil
}

// GetPublishedPage retrieves a published page by slug for the storefront.
// Unpublished pages stay invisible there, as if they did not exist.
func (s *ContentService) GetPublishedPage(ctx context.Context, pageSlug string) (*domain.ContentPage, error) {
	page, err := s.repo.GetBySlug(ctx, pageSlug)
	if err != nil {
		return nil, fmt.Errorf("get page by slug: %w", err)
	}
	if !page.Published {
		return nil, apperrors.NotFound("page", pageSlug)
	}
	return page, nil
}

// ListPublishedPages returns published pages without their sections.
func (s *ContentService) ListPublishedPages(ctx context.Context) ([]domain.ContentPage, error) {
	pages, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published pages: %w", err)
	}
	return pages, nil
}

// ListPages returns all pages for the back office, without sections.
func (s *ContentService) ListPages(ctx context.Context) ([]domain.ContentPage, error) {
	pages, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// UpdatePage applies partial updates to a page. Retitling regenerates the slug.
func (s *ContentService) UpdatePage(ctx context.Context, id string, input *domain.UpdatePageInput) (*domain.ContentPage, error) {
	page, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get page for update: %w", err)
	}

	if input.Title != nil {
		page.Title = *input.Title
		page.Slug = slug.Generate(*input.Title)
		if page.Slug == "" {
			return nil, apperrors.InvalidInput("page title must contain at least one letter or digit")
		}
	}
	if input.Published != nil {
		page.Published = *input.Published
	}
	page.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}

	s.logger.InfoContext(ctx, "page updated",
		slog.String("page_id", page.ID),
		slog.String("slug", page.Slug),
		slog.Bool("published", page.Published),
	)

	return page, nil
}

// DeletePage removes a page and its sections.
func (s *ContentService) DeletePage(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}

	s.logger.InfoContext(ctx, "page deleted",
		slog.String("page_id", id),
	)

	return nil
}

// AddSection inserts a new section into a page.
func (s *ContentService) AddSection(ctx context.Context, pageID string, input *domain.CreateSectionInput) (*domain.PageSection, error) {
	if _, err := s.repo.GetByID(ctx, pageID); err != nil {
		return nil, fmt.Errorf("get page for section: %w", err)
	}

	section := &domain.PageSection{
		ID:       uuid.New().String(),
		PageID:   pageID,
		Heading:  input.Heading,
		Body:     input.Body,
		ImageURL: input.ImageURL,
		Position: input.Position,
	}

	if err := s.repo.AddSection(ctx, section); err != nil {
		return nil, fmt.Errorf("add page section: %w", err)
	}

	s.logger.InfoContext(ctx, "section added",
		slog.String("page_id", pageID),
		slog.String("section_id", section.ID),
	)

	return section, nil
}

// DeleteSection removes a section by its ID.
func (s *ContentService) DeleteSection(ctx context.Context, id string) error {
	if err := s.repo.DeleteSection(ctx, id); err != nil {
		return fmt.Errorf("delete page section: %w", err)
	}
	return nil
}
