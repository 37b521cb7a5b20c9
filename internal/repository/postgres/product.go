// Package postgres implements the domain repositories on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wali-jeweller/storefront/internal/domain"
	"github.com/wali-jeweller/storefront/internal/tablestate"
	"github.com/wali-jeweller/storefront/pkg/database"
	apperrors "github.com/wali-jeweller/storefront/pkg/errors"
)

// productColumns is the standard SELECT column list for products.
const productColumns = `id, name, slug, description, price_cents, category_id,
	status, (embedding IS NOT NULL) AS has_embedding, created_at, updated_at`

// productSortColumns whitelists the columns admin tables may sort by.
var productSortColumns = map[string]string{
	"name":        "name",
	"slug":        "slug",
	"price":       "price_cents",
	"price_cents": "price_cents",
	"status":      "status",
	"created_at":  "created_at",
}

// productFilterColumns whitelists the columns admin tables may filter by.
var productFilterColumns = map[string]string{
	"status":      "status",
	"category_id": "category_id",
	"slug":        "slug",
}

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price_cents, category_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.PriceCents,
		p.CategoryID,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its unique identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its URL-friendly slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE slug = $1`, productColumns)
	return r.scanProduct(ctx, query, slug)
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price_cents = $4,
		    category_id = $5, status = $6, updated_at = $7
		WHERE id = $8`

	ct, err := r.pool.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		p.PriceCents,
		p.CategoryID,
		p.Status,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// List returns one page of products driven by table view state. The search
// string matches name and slug; whitelisted filters become WHERE clauses,
// whitelisted sort entries become ORDER BY, and page/size become
// LIMIT/OFFSET, with the page clamped to the filtered row count. Unknown
// filter or sort IDs are ignored.
func (r *ProductRepository) List(ctx context.Context, state tablestate.State) (*domain.ProductList, error) {
	var (
		conditions []string
		args       []any
	)

	if state.Search != "" {
		args = append(args, "%"+state.Search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE $"+n+" OR slug ILIKE $"+n+")")
	}

	for _, f := range state.Filters {
		column, ok := productFilterColumns[f.ID]
		if !ok {
			continue
		}
		args = append(args, f.Value)
		conditions = append(conditions, column+" = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	var orderClauses []string
	for _, s := range state.Sort {
		column, ok := productSortColumns[s.ID]
		if !ok {
			continue
		}
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		orderClauses = append(orderClauses, column+" "+direction)
	}
	orderBy := " ORDER BY created_at DESC"
	if len(orderClauses) > 0 {
		orderBy = " ORDER BY " + strings.Join(orderClauses, ", ")
	}

	pageSize := state.PageSize
	if pageSize <= 0 {
		pageSize = tablestate.DefaultPageSize
	}

	// Clamp the requested page to the filtered row count so a stale query
	// string cannot select an offset past the last row.
	page := state.PageIndex
	if maxPage := (total - 1) / pageSize; page > maxPage {
		page = maxPage
	}
	if page < 0 {
		page = 0
	}

	args = append(args, pageSize)
	limitArg := strconv.Itoa(len(args))
	args = append(args, page*pageSize)
	offsetArg := strconv.Itoa(len(args))

	query := fmt.Sprintf("SELECT %s FROM products", productColumns) + where + orderBy +
		" LIMIT $" + limitArg + " OFFSET $" + offsetArg

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	return &domain.ProductList{Products: products, Total: total, PageIndex: page}, nil
}

// ListByCategory returns active products in a category, newest first.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE category_id = $1 AND status = $2
		ORDER BY created_at DESC`, productColumns)

	rows, err := r.pool.Query(ctx, query, categoryID, domain.ProductStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListRelated delegates similarity search entirely to pgvector: one query
// compares stored embeddings by cosine distance against the source product's
// embedding, keeps rows above the similarity threshold, and returns them in
// descending similarity order.
func (r *ProductRepository) ListRelated(ctx context.Context, productID string, threshold float64, limit int) ([]domain.RelatedProduct, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.description, p.price_cents, p.category_id,
		       p.status, (p.embedding IS NOT NULL) AS has_embedding, p.created_at, p.updated_at,
		       1 - (p.embedding <=> s.embedding) AS similarity
		FROM products p,
		     (SELECT embedding FROM products WHERE id = $1 AND embedding IS NOT NULL) s
		WHERE p.id <> $1
		  AND p.embedding IS NOT NULL
		  AND p.status = $2
		  AND 1 - (p.embedding <=> s.embedding) > $3
		ORDER BY p.embedding <=> s.embedding
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, productID, domain.ProductStatusActive, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list related products: %w", err)
	}
	defer rows.Close()

	var related []domain.RelatedProduct

	for rows.Next() {
		var rp domain.RelatedProduct
		if err := rows.Scan(
			&rp.ID,
			&rp.Name,
			&rp.Slug,
			&rp.Description,
			&rp.PriceCents,
			&rp.CategoryID,
			&rp.Status,
			&rp.HasEmbedding,
			&rp.CreatedAt,
			&rp.UpdatedAt,
			&rp.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan related product: %w", err)
		}
		related = append(related, rp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate related products: %w", err)
	}

	if related == nil {
		related = []domain.RelatedProduct{}
	}

	return related, nil
}

// UpdateEmbedding stores the embedding vector for a product. The vector is
// passed as a pgvector literal.
func (r *ProductRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE products SET embedding = $1, updated_at = NOW() WHERE id = $2`,
		vectorLiteral(embedding), id,
	)
	if err != nil {
		return fmt.Errorf("update product embedding: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

func (r *ProductRepository) scanProduct(ctx context.Context, query, key string) (*domain.Product, error) {
	var p domain.Product

	err := r.pool.QueryRow(ctx, query, key).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.PriceCents,
		&p.CategoryID,
		&p.Status,
		&p.HasEmbedding,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", key)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Description,
			&p.PriceCents,
			&p.CategoryID,
			&p.Status,
			&p.HasEmbedding,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// vectorLiteral renders a pgvector input literal, e.g. "[0.1,0.2]".
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
