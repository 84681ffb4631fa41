package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
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

func productColumns() []string {
	return []string{"id", "name", "description", "price_cents", "stock", "category_id", "updated_at"}
}

func TestGetProduct(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT id, name, description`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(productColumns()).
			AddRow("p1", "Poster", "", int64(10000), 10, "c1", time.Now()))

	repo := NewPostgresRepository(mock)

	p, err := repo.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if p.Name != "Poster" || p.PriceCents != 10000 || p.Stock != 10 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestGetProduct_Missing(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT id, name, description`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresRepository(mock)

	_, err := repo.GetProduct(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStock_MissingProduct(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`UPDATE products SET stock`).
		WithArgs("nope", 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepository(mock)

	err := repo.SetStock(context.Background(), "nope", 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStock(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`UPDATE products SET stock`).
		WithArgs("p1", 25).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPostgresRepository(mock)

	if err := repo.SetStock(context.Background(), "p1", 25); err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
