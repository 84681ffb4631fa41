package order

import "time"

// Item is an immutable snapshot of what was bought and at what price.
// PriceAtPurchaseCents comes from the cart line's price-at-add snapshot,
// never from the live product price, so historical orders are immune to
// later catalog changes. ProductName is a read-time reference for display.
type Item struct {
	ID                   string `json:"itemId"`
	OrderID              string `json:"orderId,omitempty"`
	ProductID            string `json:"productId"`
	ProductName          string `json:"productName,omitempty"`
	Quantity             int    `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"priceAtPurchaseCents"`
}

type Order struct {
	ID         string    `json:"orderId"`
	UserID     string    `json:"userId"`
	TotalCents int64     `json:"totalCents"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	Items      []Item    `json:"items"`
}
