package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopstack/storefront-platform/internal/models"
	"github.com/shopstack/storefront-platform/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error)
	CountProducts(ctx context.Context) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, category_id, title, description, price, discount, pictures, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	product.ID = uuid.New()

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.CategoryID, product.Title, product.Description,
		product.Price, product.Discount, pq.Array(product.Pictures), product.CreatedBy).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}
	category := &models.Category{}

	query := `
		SELECT p.id, p.category_id, p.title, p.description, p.price, p.discount,
		       p.pictures, p.created_by, p.created_at, p.updated_at,
		       c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&product.ID, &product.CategoryID, &product.Title, &product.Description,
			&product.Price, &product.Discount, pq.Array(&product.Pictures),
			&product.CreatedBy, &product.CreatedAt, &product.UpdatedAt,
			&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET category_id = $1, title = $2, description = $3, price = $4, discount = $5, pictures = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query,
		product.CategoryID, product.Title, product.Description,
		product.Price, product.Discount, pq.Array(product.Pictures), product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	countQuery := `SELECT COUNT(*) FROM products`

	query := `
		SELECT p.id, p.category_id, p.title, p.description, p.price, p.discount,
		       p.pictures, p.created_by, p.created_at, p.updated_at,
		       c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2`

	return r.queryProductPage(ctx, countQuery, nil, query, []any{size, (page - 1) * size})
}

func (r *productRepository) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) ([]*models.Product, int, error) {
	countQuery := `SELECT COUNT(*) FROM products WHERE category_id = $1`

	query := `
		SELECT p.id, p.category_id, p.title, p.description, p.price, p.discount,
		       p.pictures, p.created_by, p.created_at, p.updated_at,
		       c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.category_id = $1
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3`

	return r.queryProductPage(ctx, countQuery, []any{categoryID}, query, []any{categoryID, size, (page - 1) * size})
}

func (r *productRepository) SearchProducts(ctx context.Context, term string, page, size int) ([]*models.Product, int, error) {
	pattern := "%" + term + "%"

	countQuery := `SELECT COUNT(*) FROM products WHERE title ILIKE $1 OR description ILIKE $1`

	query := `
		SELECT p.id, p.category_id, p.title, p.description, p.price, p.discount,
		       p.pictures, p.created_by, p.created_at, p.updated_at,
		       c.id, c.name, c.description
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.title ILIKE $1 OR p.description ILIKE $1
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3`

	return r.queryProductPage(ctx, countQuery, []any{pattern}, query, []any{pattern, size, (page - 1) * size})
}

func (r *productRepository) CountProducts(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	query := `SELECT COUNT(*) FROM products`

	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("querying database: %w", err)
	}

	return total, nil
}

func (r *productRepository) queryProductPage(ctx context.Context, countQuery string, countArgs []any, query string, args []any) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("querying database: %w", err)
	}

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}
		category := &models.Category{}

		err := rows.Scan(&product.ID, &product.CategoryID, &product.Title, &product.Description,
			&product.Price, &product.Discount, pq.Array(&product.Pictures),
			&product.CreatedBy, &product.CreatedAt, &product.UpdatedAt,
			&category.ID, &category.Name, &category.Description)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}

		product.Category = category
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}
