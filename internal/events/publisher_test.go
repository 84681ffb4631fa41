package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/order"
)

func TestOrderCreatedWireShape(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := newOrderCreated(&order.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalCents: 25000,
		Items: []order.Item{
			{ProductID: "p1", Quantity: 2, PriceAtPurchaseCents: 10000},
		},
	}, now)

	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"eventType", "orderId", "userId", "totalCents", "items", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in wire shape: %s", key, body)
		}
	}
}

func TestOrderCreatedCarriesPurchaseSnapshots(t *testing.T) {
	o := &order.Order{
		ID:         "order-1",
		UserID:     "user-1",
		TotalCents: 25000,
		Items: []order.Item{
			{ProductID: "p1", Quantity: 2, PriceAtPurchaseCents: 10000},
			{ProductID: "p2", Quantity: 1, PriceAtPurchaseCents: 5000},
		},
	}

	ev := newOrderCreated(o, time.Now().UTC())

	if len(ev.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(ev.Items))
	}
	var sum int64
	for _, it := range ev.Items {
		sum += it.PriceAtPurchaseCents * int64(it.Quantity)
	}
	if sum != ev.TotalCents {
		t.Fatalf("event total %d does not match item sum %d", ev.TotalCents, sum)
	}
}
