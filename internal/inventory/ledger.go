package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/db"
)

// Ledger performs atomic check-then-decrement reservations against the
// products table. The read and the decrement happen under a row lock
// (SELECT ... FOR UPDATE), so two concurrent reservations on the same
// product serialize at the store and stock can never go negative. On any
// failure nothing is mutated.
type Ledger struct {
	pool db.Pool
}

func NewLedger(pool db.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// ReserveWithTx decrements stock for one product inside the caller's
// transaction and returns the new stock level. It returns
// *ProductNotFoundError or *InsufficientStockError without touching the row;
// the caller decides whether the whole transaction aborts.
func (l *Ledger) ReserveWithTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) (int, error) {
	return reserve(ctx, tx, productID, quantity)
}

// Reserve runs a multi-line reservation in its own transaction, visiting
// lines in ascending product-id order. All lines succeed or none do.
func (l *Ledger) Reserve(ctx context.Context, lines []Line) error {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	// Lock rows in ascending product-id order. Every reservation path uses
	// this order, which rules out lock-ordering deadlocks between two
	// checkouts reserving overlapping product sets.
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	for _, line := range sorted {
		if _, err := reserve(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func reserve(ctx context.Context, q querier, productID string, quantity int) (int, error) {
	var available int
	err := q.QueryRow(ctx, `
		SELECT stock FROM products WHERE id = $1 FOR UPDATE
	`, productID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &ProductNotFoundError{ProductID: productID}
		}
		return 0, fmt.Errorf("lock product row: %w", err)
	}

	if available < quantity {
		return 0, &InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}

	var newStock int
	err = q.QueryRow(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1
		RETURNING stock
	`, productID, quantity).Scan(&newStock)
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, nil
}
