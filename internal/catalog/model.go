package catalog

import "time"

type Category struct {
	ID          string `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Product prices are integer minor units (cents). Stock is mutated only by
// the inventory ledger's reserve and by SetStock.
type Product struct {
	ID          string    `json:"productId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	CategoryID  string    `json:"categoryId,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
