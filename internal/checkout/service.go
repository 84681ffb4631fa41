package checkout

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/cart"
	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/inventory"
	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/order"
)

// TxBeginner is the slice of the pgx pool checkout needs to own the one
// transaction that guards stock, order, and cart together.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type CartStore interface {
	LinesFor(ctx context.Context, userID string) ([]cart.Line, error)
	ClearForWithTx(ctx context.Context, tx pgx.Tx, userID string) (int64, error)
}

type StockReserver interface {
	ReserveWithTx(ctx context.Context, tx pgx.Tx, productID string, quantity int) (int, error)
}

type OrderWriter interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, o *order.Order) error
}

type OrderCreatedPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

// Service converts a user's cart into a durable order. The four effects of
// a checkout (stock decrement, order header, order items, cart clear) ride
// on a single transaction: all appear or none do. Committing the order
// without decrementing stock would allow overselling on retry; decrementing
// without the order would silently consume inventory; keeping the cart
// would let the user check the same items out twice.
type Service struct {
	pool   TxBeginner
	carts  CartStore
	ledger StockReserver
	orders OrderWriter
	events OrderCreatedPublisher // optional
	logger *log.Logger
}

func NewService(pool TxBeginner, carts CartStore, ledger StockReserver, orders OrderWriter, events OrderCreatedPublisher, logger *log.Logger) *Service {
	return &Service{
		pool:   pool,
		carts:  carts,
		ledger: ledger,
		orders: orders,
		events: events,
		logger: logger,
	}
}

// Checkout runs the fulfillment state machine for one user. It fails with
// ErrEmptyCart, *inventory.ProductNotFoundError,
// *inventory.InsufficientStockError, or *PersistenceError; every failure
// aborts before any effect is committed.
func (s *Service) Checkout(ctx context.Context, userID string) (*order.Order, error) {
	lines, err := s.carts.LinesFor(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Reserve in ascending product-id order so two overlapping checkouts
	// always lock rows in the same order.
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, &PersistenceError{Op: "begin tx", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int64
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		if _, err := s.ledger.ReserveWithTx(ctx, tx, line.ProductID, line.Quantity); err != nil {
			var short *inventory.InsufficientStockError
			var missing *inventory.ProductNotFoundError
			if errors.As(err, &short) || errors.As(err, &missing) {
				return nil, err
			}
			return nil, &PersistenceError{Op: "reserve stock", Err: err}
		}

		items = append(items, order.Item{
			ProductID:            line.ProductID,
			Quantity:             line.Quantity,
			PriceAtPurchaseCents: line.PriceAtAddCents,
		})
		total += line.PriceAtAddCents * int64(line.Quantity)
	}

	o := &order.Order{
		UserID:     userID,
		TotalCents: total,
		Status:     order.StatusPlaced,
		Items:      items,
	}
	if err := s.orders.CreateWithTx(ctx, tx, o); err != nil {
		return nil, &PersistenceError{Op: "create order", Err: err}
	}

	if _, err := s.carts.ClearForWithTx(ctx, tx, userID); err != nil {
		return nil, &PersistenceError{Op: "clear cart", Err: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit", Err: err}
	}

	// Post-commit, best effort. A checkout that committed but could not be
	// announced is still a successful checkout.
	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Printf("publish OrderCreated for order %s: %v", o.ID, err)
		}
	}

	return o, nil
}
