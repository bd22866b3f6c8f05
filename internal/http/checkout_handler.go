package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/order"
)

// OrderSubmitter is the checkout entry point the handler calls into.
type OrderSubmitter interface {
	Submit(ctx context.Context, cartID string, identity order.Identity) (*order.Receipt, error)
}

type CheckoutHandler struct {
	submitter OrderSubmitter
}

func NewCheckoutHandler(submitter OrderSubmitter) *CheckoutHandler {
	return &CheckoutHandler{submitter: submitter}
}

type CheckoutRequestDTO struct {
	Nick    string `json:"nick"`
	Discord string `json:"discord"`
}

type CheckoutResponseDTO struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type StockConflictDTO struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	cartID := cartIDFromContext(r.Context())

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	receipt, err := h.submitter.Submit(r.Context(), cartID, order.Identity{
		Nick:    req.Nick,
		Discord: req.Discord,
	})
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: receipt.OrderID,
		Status:  receipt.Status.String(),
		Message: "Pedido recebido! Entraremos em contato em breve.",
	})
}

func (h *CheckoutHandler) respondSubmitError(w http.ResponseWriter, err error) {
	var conflict *order.StockConflictError
	switch {
	case errors.Is(err, order.ErrMissingIdentity):
		respondError(w, http.StatusBadRequest, "missing_identity", "nick and discord are required")
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.As(err, &conflict):
		respondJSON(w, http.StatusConflict, struct {
			ErrorResponse
			Conflict StockConflictDTO `json:"conflict"`
		}{
			ErrorResponse: ErrorResponse{
				Error:   http.StatusText(http.StatusConflict),
				Code:    "stock_conflict",
				Details: conflict.Error(),
			},
			Conflict: StockConflictDTO{
				ProductID: conflict.ProductID,
				Requested: conflict.Requested,
				Available: conflict.Available,
			},
		})
	case errors.Is(err, order.ErrSubmissionInFlight):
		respondError(w, http.StatusConflict, "submission_in_flight", "an order for this cart is already being sent")
	case errors.Is(err, order.ErrNoWebhook):
		respondError(w, http.StatusServiceUnavailable, "webhook_not_configured", "order endpoint is not configured")
	default:
		// Generic, non-technical message; the cart was preserved.
		respondError(w, http.StatusBadGateway, "submission_failed", "could not send the order right now, try again")
	}
}
