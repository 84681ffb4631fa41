package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/cart"
	"github.com/MuhammedRiyas4313/Aloitte-Server/internal/catalog"
)

type CartHandler struct {
	carts   cart.Repository
	catalog catalog.Repository
}

func NewCartHandler(carts cart.Repository, catalog catalog.Repository) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.carts.LinesFor(ctx, UserID(ctx))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": lines,
		"count": len(lines),
	})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem puts a product in the cart, snapshotting the catalog price as
// price-at-add. Adding a product already in the cart accumulates quantity;
// the original snapshot stays.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "productId and quantity >= 1 are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	line, err := h.carts.UpsertLine(ctx, UserID(ctx), p.ID, req.Quantity, p.PriceCents)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, line)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineId")
	if lineID == "" {
		writeError(w, http.StatusBadRequest, "missing lineId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.carts.RemoveLine(ctx, UserID(ctx), lineID); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			writeError(w, http.StatusNotFound, "cart line not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove cart line")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
