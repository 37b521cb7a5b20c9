package postgres

import (
	"context"
	"fmt"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/pkg/database"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// ImageRepository implements domain.ImageRepository using PostgreSQL.
type ImageRepository struct {
	pool database.DBTX
}

// NewImageRepository creates a PostgreSQL-backed image repository.
func NewImageRepository(pool database.DBTX) *ImageRepository {
	return &ImageRepository{pool: pool}
}

// Create inserts a new image row.
func (r *ImageRepository) Create(ctx context.Context, img *domain.Image) error {
	query := `
		INSERT INTO product_images (id, product_id, url, alt, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		img.ID,
		img.ProductID,
		img.URL,
		img.Alt,
		img.Position,
		img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}

	return nil
}

// ListByProduct returns a product's images ordered by position.
func (r *ImageRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Image, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, url, alt, position, created_at
		 FROM product_images WHERE product_id = $1 ORDER BY position`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	var images []domain.Image

	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Alt, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}

	if images == nil {
		images = []domain.Image{}
	}

	return images, nil
}

// Delete removes an image row by its identifier.
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("image", id)
	}

	return nil
}
