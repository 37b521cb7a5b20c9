package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/pkg/database"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

const pageColumns = `id, title, slug, published, created_at, updated_at`

// PageRepository implements domain.PageRepository using PostgreSQL.
type PageRepository struct {
	pool database.DBTX
}

// NewPageRepository creates a PostgreSQL-backed content page repository.
func NewPageRepository(pool database.DBTX) *PageRepository {
	return &PageRepository{pool: pool}
}

// Create inserts a new content page.
func (r *PageRepository) Create(ctx context.Context, p *domain.ContentPage) error {
	query := `
		INSERT INTO content_pages (id, title, slug, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Slug,
		p.Published,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("page", "slug", p.Slug)
		}
		return fmt.Errorf("insert page: %w", err)
	}

	return nil
}

// GetByID retrieves a page with its sections by identifier.
func (r *PageRepository) GetByID(ctx context.Context, id string) (*domain.ContentPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_pages WHERE id = $1`, pageColumns)
	return r.getPage(ctx, query, id)
}

// GetBySlug retrieves a page with its sections by slug.
func (r *PageRepository) GetBySlug(ctx context.Context, slug string) (*domain.ContentPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_pages WHERE slug = $1`, pageColumns)
	return r.getPage(ctx, query, slug)
}

// Update modifies an existing page.
func (r *PageRepository) Update(ctx context.Context, p *domain.ContentPage) error {
	p.UpdatedAt = time.Now().UTC()

	ct, err := r.pool.Exec(ctx,
		`UPDATE content_pages SET title = $1, slug = $2, published = $3, updated_at = $4 WHERE id = $5`,
		p.Title, p.Slug, p.Published, p.UpdatedAt, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("page", "slug", p.Slug)
		}
		return fmt.Errorf("update page: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("page", p.ID)
	}

	return nil
}

// Delete removes a page. Sections go with it via ON DELETE CASCADE.
func (r *PageRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM content_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("page", id)
	}

	return nil
}

// ListPublished returns published pages without sections, newest first.
func (r *PageRepository) ListPublished(ctx context.Context) ([]domain.ContentPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_pages WHERE published = true ORDER BY created_at DESC`, pageColumns)
	return r.listPages(ctx, query)
}

// ListAll returns all pages without sections, newest first.
func (r *PageRepository) ListAll(ctx context.Context) ([]domain.ContentPage, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_pages ORDER BY created_at DESC`, pageColumns)
	return r.listPages(ctx, query)
}

// AddSection inserts a section into a page.
func (r *PageRepository) AddSection(ctx context.Context, s *domain.PageSection) error {
	query := `
		INSERT INTO page_sections (id, page_id, heading, body, image_url, position)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.PageID,
		s.Heading,
		s.Body,
		s.ImageURL,
		s.Position,
	)
	if err != nil {
		return fmt.Errorf("insert page section: %w", err)
	}

	return nil
}

// DeleteSection removes a section by its identifier.
func (r *PageRepository) DeleteSection(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM page_sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page section: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("page section", id)
	}

	return nil
}

func (r *PageRepository) getPage(ctx context.Context, query, key string) (*domain.ContentPage, error) {
	var p domain.ContentPage

	err := r.pool.QueryRow(ctx, query, key).Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Published,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("page", key)
		}
		return nil, fmt.Errorf("scan page: %w", err)
	}

	sections, err := r.listSections(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sections = sections

	return &p, nil
}

func (r *PageRepository) listSections(ctx context.Context, pageID string) ([]domain.PageSection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, page_id, heading, body, image_url, position
		 FROM page_sections WHERE page_id = $1 ORDER BY position`,
		pageID,
	)
	if err != nil {
		return nil, fmt.Errorf("list page sections: %w", err)
	}
	defer rows.Close()

	var sections []domain.PageSection

	for rows.Next() {
		var s domain.PageSection
		if err := rows.Scan(&s.ID, &s.PageID, &s.Heading, &s.Body, &s.ImageURL, &s.Position); err != nil {
			return nil, fmt.Errorf("scan page section row: %w", err)
		}
		sections = append(sections, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page section rows: %w", err)
	}

	if sections == nil {
		sections = []domain.PageSection{}
	}

	return sections, nil
}

func (r *PageRepository) listPages(ctx context.Context, query string) ([]domain.ContentPage, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []domain.ContentPage

	for rows.Next() {
		var p domain.ContentPage
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan page row: %w", err)
		}
		pages = append(pages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page rows: %w", err)
	}

	if pages == nil {
		pages = []domain.ContentPage{}
	}

	return pages, nil
}
