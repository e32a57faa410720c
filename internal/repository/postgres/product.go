package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sbecom/storeapi/internal/domain"
	"github.com/sbecom/storeapi/pkg/database"
	apperrors "github.com/sbecom/storeapi/pkg/errors"
	"github.com/sbecom/storeapi/pkg/paging"
)

const productColumns = "id, category_id, name, description, image, quantity, price, discount, special_price, created_at, updated_at"

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product. The assigned ID and timestamps are written
// back onto p.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, image, quantity, price, discount, special_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		p.CategoryID, p.Name, p.Description, p.Image, p.Quantity, p.Price, p.Discount, p.SpecialPrice,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("category", "id", p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1",
		id,
	).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Quantity,
		&p.Price, &p.Discount, &p.SpecialPrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", "id", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns one page of products with the total count.
func (r *ProductRepository) List(ctx context.Context, page paging.Request) ([]domain.Product, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		ORDER BY %s
		LIMIT $1 OFFSET $2`,
		productColumns, page.OrderBy(),
	)
	return r.scanPage(ctx, query, page.Limit(), page.Offset())
}

// ListByCategory returns one page of products in the given category. Price is
// a secondary ordering axis so shoppers see cheaper items first within equal
// sort values.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64, page paging.Request) ([]domain.Product, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		WHERE category_id = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3`,
		productColumns, page.OrderBy("price"),
	)
	return r.scanPage(ctx, query, categoryID, page.Limit(), page.Offset())
}

// ListByKeyword returns one page of products whose name contains the keyword,
// case-insensitively.
func (r *ProductRepository) ListByKeyword(ctx context.Context, keyword string, page paging.Request) ([]domain.Product, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM products
		WHERE name ILIKE $1
		ORDER BY %s
		LIMIT $2 OFFSET $3`,
		productColumns, page.OrderBy(),
	)
	return r.scanPage(ctx, query, "%"+keyword+"%", page.Limit(), page.Offset())
}

func (r *ProductRepository) scanPage(ctx context.Context, query string, args ...any) ([]domain.Product, int64, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products []domain.Product
		total    int64
	)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Image, &p.Quantity,
			&p.Price, &p.Discount, &p.SpecialPrice, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products, total, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, quantity = $3, price = $4, discount = $5,
		    special_price = $6, updated_at = NOW()
		WHERE id = $7`,
		p.Name, p.Description, p.Quantity, p.Price, p.Discount, p.SpecialPrice, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", "id", p.ID)
	}
	return nil
}

// UpdateImage stores a new image reference on the product.
func (r *ProductRepository) UpdateImage(ctx context.Context, id int64, image string) error {
	ct, err := r.pool.Exec(ctx,
		"UPDATE products SET image = $1, updated_at = NOW() WHERE id = $2",
		image, id,
	)
	if err != nil {
		return fmt.Errorf("update product image: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", "id", id)
	}
	return nil
}

// Delete removes a product by its identifier.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", "id", id)
	}
	return nil
}
