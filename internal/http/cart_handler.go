package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/cart"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/money"
)

// CartService defines what the handlers need from the cart store.
// Consumers define this interface, not the implementation.
type CartService interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, product domain.Product, qty int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type CartHandler struct {
	carts   CartService
	catalog Catalog
	money   money.Formatter
}

func NewCartHandler(carts CartService, catalog Catalog, money money.Formatter) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, money: money}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	UnitPriceText string `json:"unit_price_text"`
	SubtotalText  string `json:"subtotal_text"`
}

type CartDTO struct {
	Lines     []CartLineDTO `json:"lines"`
	Count     int           `json:"count"`
	TotalText string        `json:"total_text"`
}

// GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())

	c, err := h.carts.Get(r.Context(), cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not load cart")
		return
	}

	respondJSON(w, http.StatusOK, h.toDTO(c))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, ok := h.catalog.Product(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "unknown product")
		return
	}

	c, err := h.carts.AddItem(r.Context(), cartID, product, req.Quantity)
	if errors.Is(err, cart.ErrInvalidQuantity) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive integer")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusOK, h.toDTO(c))
}

// PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.SetQuantity(r.Context(), cartID, productID, req.Quantity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusOK, h.toDTO(c))
}

// DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	c, err := h.carts.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not update cart")
		return
	}

	respondJSON(w, http.StatusOK, h.toDTO(c))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), cartID); err != nil {
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not clear cart")
		return
	}

	respondJSON(w, http.StatusOK, CartDTO{Lines: []CartLineDTO{}, TotalText: h.money.Format(decimal.Zero)})
}

func (h *CartHandler) toDTO(c *domain.Cart) CartDTO {
	lines := make([]CartLineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineDTO{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Quantity:      l.Quantity,
			UnitPriceText: h.money.Format(l.UnitPrice),
			SubtotalText:  h.money.Format(l.Subtotal()),
		})
	}

	return CartDTO{
		Lines:     lines,
		Count:     c.Count(),
		TotalText: h.money.Format(c.Total()),
	}
}
