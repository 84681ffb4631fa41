package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/checkout"
	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/inventory"
	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/order"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*order.Order, error)
}

type CheckoutHandler struct {
	service CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout translates the fulfillment error taxonomy to transport status:
// empty cart is a client error, stock conflicts are 409 with the offending
// product so the client can re-render the cart, and persistence failures
// are 500 and safe to retry because nothing committed.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.service.Checkout(ctx, UserID(ctx))
	if err != nil {
		var short *inventory.InsufficientStockError
		var missing *inventory.ProductNotFoundError
		var persistence *checkout.PersistenceError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &missing):
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":     "product no longer exists",
				"productId": missing.ProductID,
			})
		case errors.As(err, &short):
			writeJSON(w, http.StatusConflict, map[string]any{
				"error":     "insufficient stock",
				"productId": short.ProductID,
				"requested": short.Requested,
				"available": short.Available,
			})
		case errors.As(err, &persistence):
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":     "checkout failed, nothing was charged",
				"retryable": true,
			})
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, o)
}
