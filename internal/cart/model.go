package cart

import "time"

// Line is one (user, product) row. PriceAtAddCents is the price snapshot
// taken on first add; re-adding the same product accumulates quantity but
// never overwrites the snapshot, so the price a shopper saw stays stable
// for the whole session. That is a product policy, not an oversight.
type Line struct {
	ID              string    `json:"lineId"`
	UserID          string    `json:"userId"`
	ProductID       string    `json:"productId"`
	Quantity        int       `json:"quantity"`
	PriceAtAddCents int64     `json:"priceAtAddCents"`
	CreatedAt       time.Time `json:"createdAt"`
}
