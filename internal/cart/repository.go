package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/db"
)

var ErrLineNotFound = errors.New("cart line not found")

type Repository interface {
	LinesFor(ctx context.Context, userID string) ([]Line, error)
	UpsertLine(ctx context.Context, userID, productID string, quantity int, priceAtAddCents int64) (Line, error)
	RemoveLine(ctx context.Context, userID, lineID string) error
	ClearFor(ctx context.Context, userID string) (int64, error)
}

// TransactionalRepository adds the variant checkout needs: clearing the
// cart inside the checkout transaction.
type TransactionalRepository interface {
	Repository
	ClearForWithTx(ctx context.Context, tx pgx.Tx, userID string) (int64, error)
}

type PostgresRepository struct {
	pool db.Pool
}

func NewPostgresRepository(pool db.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// LinesFor returns the user's cart lines in ascending product-id order.
// An empty cart is an empty slice, not an error.
func (r *PostgresRepository) LinesFor(ctx context.Context, userID string) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, product_id, quantity, price_at_add_cents, created_at
		FROM cart_lines
		WHERE user_id = $1
		ORDER BY product_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart lines: %w", err)
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.PriceAtAddCents, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return lines, nil
}

// UpsertLine inserts a line for (user, product) or, if one exists,
// accumulates quantity. The stored price_at_add_cents is deliberately left
// untouched on conflict: the snapshot from the first add wins.
func (r *PostgresRepository) UpsertLine(ctx context.Context, userID, productID string, quantity int, priceAtAddCents int64) (Line, error) {
	var l Line
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cart_lines (id, user_id, product_id, quantity, price_at_add_cents)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = cart_lines.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity, price_at_add_cents, created_at
	`, uuid.NewString(), userID, productID, quantity, priceAtAddCents).
		Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.PriceAtAddCents, &l.CreatedAt)
	if err != nil {
		return Line{}, fmt.Errorf("upsert cart line: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) RemoveLine(ctx context.Context, userID, lineID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM cart_lines WHERE user_id = $1 AND id = $2
	`, userID, lineID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

// ClearFor removes every line for the user and reports how many rows went.
// Clearing an already-empty cart is a no-op returning zero.
func (r *PostgresRepository) ClearFor(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) ClearForWithTx(ctx context.Context, tx pgx.Tx, userID string) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}
