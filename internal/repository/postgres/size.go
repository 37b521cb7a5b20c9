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

// SizeRepository implements domain.SizeRepository using PostgreSQL.
type SizeRepository struct {
	pool database.DBTX
}

// NewSizeRepository creates a PostgreSQL-backed size repository.
func NewSizeRepository(pool database.DBTX) *SizeRepository {
	return &SizeRepository{pool: pool}
}

// Create inserts a new size.
func (r *SizeRepository) Create(ctx context.Context, s *domain.Size) error {
	query := `
		INSERT INTO sizes (id, label, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, s.ID, s.Label, s.SortOrder, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("size", "label", s.Label)
		}
		return fmt.Errorf("insert size: %w", err)
	}

	return nil
}

// GetByID retrieves a size by its unique identifier.
func (r *SizeRepository) GetByID(ctx context.Context, id string) (*domain.Size, error) {
	var s domain.Size

	err := r.pool.QueryRow(ctx,
		`SELECT id, label, sort_order, created_at, updated_at FROM sizes WHERE id = $1`, id,
	).Scan(&s.ID, &s.Label, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("size", id)
		}
		return nil, fmt.Errorf("scan size: %w", err)
	}

	return &s, nil
}

// Update modifies an existing size.
func (r *SizeRepository) Update(ctx context.Context, s *domain.Size) error {
	s.UpdatedAt = time.Now().UTC()

	ct, err := r.pool.Exec(ctx,
		`UPDATE sizes SET label = $1, sort_order = $2, updated_at = $3 WHERE id = $4`,
		s.Label, s.SortOrder, s.UpdatedAt, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("size", "label", s.Label)
		}
		return fmt.Errorf("update size: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("size", s.ID)
	}

	return nil
}

// Delete removes a size by its identifier.
func (r *SizeRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete size: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("size", id)
	}

	return nil
}

// ListAll returns all sizes ordered by sort_order.
func (r *SizeRepository) ListAll(ctx context.Context) ([]domain.Size, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, label, sort_order, created_at, updated_at FROM sizes ORDER BY sort_order, label`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()

	var sizes []domain.Size

	for rows.Next() {
		var s domain.Size
		if err := rows.Scan(&s.ID, &s.Label, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan size row: %w", err)
		}
		sizes = append(sizes, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate size rows: %w", err)
	}

	if sizes == nil {
		sizes = []domain.Size{}
	}

	return sizes, nil
}
