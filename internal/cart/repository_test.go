package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func lineColumns() []string {
	return []string{"id", "user_id", "product_id", "quantity", "price_at_add_cents", "created_at"}
}

func TestLinesFor_EmptyCartIsEmptySliceNotError(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT id, user_id, product_id`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(lineColumns()))

	repo := NewPostgresRepository(mock)

	lines, err := repo.LinesFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("lines for: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("want empty slice, got %#v", lines)
	}
}

func TestLinesFor_ReturnsLinesInProductOrder(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, product_id`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows(lineColumns()).
			AddRow("l1", "u1", "p1", 2, int64(10000), now).
			AddRow("l2", "u1", "p2", 1, int64(5000), now))

	repo := NewPostgresRepository(mock)

	lines, err := repo.LinesFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("lines for: %v", err)
	}
	if len(lines) != 2 || lines[0].ProductID != "p1" || lines[1].ProductID != "p2" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
	if lines[0].PriceAtAddCents != 10000 {
		t.Fatalf("price snapshot lost: %d", lines[0].PriceAtAddCents)
	}
}

func TestUpsertLine_AccumulatesQuantityKeepsSnapshot(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()
	// Second add of the same product: quantity accumulates, the stored
	// price_at_add is the one from the first add even though the caller
	// passed the current (changed) catalog price.
	mock.ExpectQuery(`INSERT INTO cart_lines`).
		WithArgs(pgxmock.AnyArg(), "u1", "p1", 3, int64(9900)).
		WillReturnRows(pgxmock.NewRows(lineColumns()).
			AddRow("l1", "u1", "p1", 5, int64(10000), now))

	repo := NewPostgresRepository(mock)

	line, err := repo.UpsertLine(context.Background(), "u1", "p1", 3, 9900)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if line.Quantity != 5 {
		t.Fatalf("quantity = %d, want accumulated 5", line.Quantity)
	}
	if line.PriceAtAddCents != 10000 {
		t.Fatalf("price_at_add = %d, want original snapshot 10000", line.PriceAtAddCents)
	}
}

func TestClearFor_IdempotentSecondCallRemovesNothing(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresRepository(mock)

	removed, err := repo.ClearFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	removed, err = repo.ClearFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if removed != 0 {
		t.Fatalf("second clear removed = %d, want 0", removed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRemoveLine_NotFound(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id`).
		WithArgs("u1", "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresRepository(mock)

	err := repo.RemoveLine(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestClearForWithTx_UsesCallersTransaction(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM cart_lines WHERE user_id`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)

	tx, err := mock.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	removed, err := repo.ClearForWithTx(context.Background(), tx, "u1")
	if err != nil {
		t.Fatalf("clear with tx: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
