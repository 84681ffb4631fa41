package inventory

import "fmt"

// Line is one product/quantity pair to reserve.
type Line struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// InsufficientStockError reports a reservation that lost the race or was
// genuinely short. Available is the stock observed under the row lock, so
// the caller can re-render the cart with accurate numbers.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// ProductNotFoundError reports a reservation against a product id that no
// longer exists, e.g. deleted between cart-add and checkout.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}
