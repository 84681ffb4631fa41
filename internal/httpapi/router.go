package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(catalog *CatalogHandler, carts *CartHandler, checkout *CheckoutHandler, orders *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalog.ListProducts)
			r.Post("/", catalog.CreateProduct)
			r.Get("/{productId}", catalog.GetProduct)
			r.Put("/{productId}/stock", catalog.SetStock)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalog.ListCategories)
			r.Post("/", catalog.CreateCategory)
		})

		// User-scoped routes; the gateway in front of this service verifies
		// the session and forwards the identity in X-User-Id.
		r.Group(func(r chi.Router) {
			r.Use(RequireUserID)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.GetCart)
				r.Post("/", carts.AddItem)
				r.Delete("/{lineId}", carts.RemoveItem)
			})

			r.Post("/checkout", checkout.Checkout)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orders.ListOrders)
				r.Get("/{orderId}", orders.GetOrder)
			})
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
