package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/db"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
	ListProducts(ctx context.Context, categoryID string) ([]Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	SetStock(ctx context.Context, productID string, stock int) error
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context) ([]Category, error)
}

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (Product, error) {
	var p Product
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, price_cents, stock, COALESCE(category_id, ''), updated_at
		FROM products WHERE id = $1
	`, productID)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CategoryID, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// ListProducts returns the whole catalog, or only one category when
// categoryID is non-empty.
func (r *PostgresRepository) ListProducts(ctx context.Context, categoryID string) ([]Product, error) {
	const q = `
		SELECT id, name, description, price_cents, stock, COALESCE(category_id, ''), updated_at
		FROM products
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CategoryID, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price_cents, stock, category_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`, p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.CategoryID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// SetStock overwrites a product's stock level. This is the restock path; it
// is not part of checkout, which only ever decrements through the ledger.
func (r *PostgresRepository) SetStock(ctx context.Context, productID string, stock int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET stock = $2, updated_at = now() WHERE id = $1
	`, productID, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)
	`, c.ID, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return categories, nil
}
