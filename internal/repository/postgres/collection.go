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

const collectionColumns = `id, name, slug, description, image_url, created_at, updated_at`

// CollectionRepository implements domain.CollectionRepository using PostgreSQL.
type CollectionRepository struct {
	pool database.DBTX
}

// NewCollectionRepository creates a PostgreSQL-backed collection repository.
func NewCollectionRepository(pool database.DBTX) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

// Create inserts a new collection.
func (r *CollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	query := `
		INSERT INTO collections (id, name, slug, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Slug,
		c.Description,
		c.ImageURL,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("collection", "slug", c.Slug)
		}
		return fmt.Errorf("insert collection: %w", err)
	}

	return nil
}

// GetByID retrieves a collection by its unique identifier.
func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM collections WHERE id = $1`, collectionColumns)
	return r.scanCollection(ctx, query, id)
}

// GetBySlug retrieves a collection by its URL-friendly slug.
func (r *CollectionRepository) GetBySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM collections WHERE slug = $1`, collectionColumns)
	return r.scanCollection(ctx, query, slug)
}

// Update modifies an existing collection.
func (r *CollectionRepository) Update(ctx context.Context, c *domain.Collection) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE collections
		SET name = $1, slug = $2, description = $3, image_url = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query,
		c.Name,
		c.Slug,
		c.Description,
		c.ImageURL,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("collection", "slug", c.Slug)
		}
		return fmt.Errorf("update collection: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("collection", c.ID)
	}

	return nil
}

// Delete removes a collection. Product links go with it via ON DELETE CASCADE.
func (r *CollectionRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("collection", id)
	}

	return nil
}

// ListAll returns all collections ordered by name.
func (r *CollectionRepository) ListAll(ctx context.Context) ([]domain.Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM collections ORDER BY name`, collectionColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var collections []domain.Collection

	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Slug,
			&c.Description,
			&c.ImageURL,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collection row: %w", err)
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection rows: %w", err)
	}

	if collections == nil {
		collections = []domain.Collection{}
	}

	return collections, nil
}

// AddProduct links a product into the collection. Re-linking updates the
// position.
func (r *CollectionRepository) AddProduct(ctx context.Context, collectionID, productID string, position int) error {
	query := `
		INSERT INTO collection_products (collection_id, product_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection_id, product_id) DO UPDATE SET position = EXCLUDED.position`

	_, err := r.pool.Exec(ctx, query, collectionID, productID, position)
	if err != nil {
		return fmt.Errorf("add product to collection: %w", err)
	}

	return nil
}

// RemoveProduct unlinks a product from the collection.
func (r *CollectionRepository) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM collection_products WHERE collection_id = $1 AND product_id = $2`,
		collectionID, productID,
	)
	if err != nil {
		return fmt.Errorf("remove product from collection: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("collection product", productID)
	}

	return nil
}

// ListProducts returns the collection's products ordered by link position.
func (r *CollectionRepository) ListProducts(ctx context.Context, collectionID string) ([]domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price_cents, p.category_id,
		       p.status, (p.embedding IS NOT NULL) AS has_embedding, p.created_at, p.updated_at
		FROM products p
		JOIN collection_products cp ON cp.product_id = p.id
		WHERE cp.collection_id = $1
		ORDER BY cp.position, p.name`

	rows, err := r.pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list collection products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *CollectionRepository) scanCollection(ctx context.Context, query, key string) (*domain.Collection, error) {
	var c domain.Collection

	err := r.pool.QueryRow(ctx, query, key).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.ImageURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("collection", key)
		}
		return nil, fmt.Errorf("scan collection: %w", err)
	}

	return &c, nil
}
