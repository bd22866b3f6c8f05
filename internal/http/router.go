package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront API surface.
func NewRouter(products *ProductHandler, carts *CartHandler, checkout *CheckoutHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/admin/preview", products.Preview)

		r.Group(func(r chi.Router) {
			r.Use(CartIDMiddleware)

			r.Get("/cart", carts.Get)
			r.Post("/cart/items", carts.AddItem)
			r.Put("/cart/items/{productID}", carts.UpdateQuantity)
			r.Delete("/cart/items/{productID}", carts.RemoveItem)
			r.Delete("/cart", carts.Clear)

			r.Post("/checkout", checkout.Submit)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
