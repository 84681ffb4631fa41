package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/order"
)

const OrderCreatedQueue = "order.created"

type OrderCreated struct {
	EventType  string      `json:"eventType"`
	OrderID    string      `json:"orderId"`
	UserID     string      `json:"userId"`
	TotalCents int64       `json:"totalCents"`
	Items      []OrderLine `json:"items"`
	Timestamp  time.Time   `json:"timestamp"`
}

type OrderLine struct {
	ProductID            string `json:"productId"`
	Quantity             int    `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"priceAtPurchaseCents"`
}

// Publisher announces committed orders on a durable queue for downstream
// consumers (fulfillment, email, analytics). Publishing happens after the
// checkout transaction commits and is best effort.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the queue so publish never fails due to missing infra
	if _, err := ch.QueueDeclare(OrderCreatedQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", OrderCreatedQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func newOrderCreated(o *order.Order, at time.Time) OrderCreated {
	ev := OrderCreated{
		EventType:  "OrderCreated",
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		Timestamp:  at,
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderLine{
			ProductID:            it.ProductID,
			Quantity:             it.Quantity,
			PriceAtPurchaseCents: it.PriceAtPurchaseCents,
		})
	}
	return ev
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	ev := newOrderCreated(o, time.Now().UTC())

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",                // default exchange
		OrderCreatedQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
