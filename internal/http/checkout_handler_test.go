package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/order"
)

func TestCheckout_Success(t *testing.T) {
	sub := &mockSubmitter{receipt: &order.Receipt{OrderID: "order-1", Status: order.StatusSucceeded}}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"Patolino","discord":"@patolino"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var dto CheckoutResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "order-1", dto.OrderID)
	assert.Equal(t, "SUCCEEDED", dto.Status)
	assert.NotEmpty(t, dto.Message)
	assert.Equal(t, 1, sub.calls)
}

func TestCheckout_MissingIdentity(t *testing.T) {
	sub := &mockSubmitter{err: order.ErrMissingIdentity}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"","discord":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "missing_identity", resp.Code)
}

func TestCheckout_EmptyCart(t *testing.T) {
	sub := &mockSubmitter{err: order.ErrEmptyCart}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"a","discord":"b"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestCheckout_StockConflictCarriesDetails(t *testing.T) {
	sub := &mockSubmitter{err: &order.StockConflictError{ProductID: "sku-1", Requested: 2, Available: 1}}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"a","discord":"b"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		ErrorResponse
		Conflict StockConflictDTO `json:"conflict"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stock_conflict", resp.Code)
	assert.Equal(t, "sku-1", resp.Conflict.ProductID)
	assert.Equal(t, 2, resp.Conflict.Requested)
	assert.Equal(t, 1, resp.Conflict.Available)
}

func TestCheckout_InFlight(t *testing.T) {
	sub := &mockSubmitter{err: order.ErrSubmissionInFlight}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"a","discord":"b"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_WebhookNotConfigured(t *testing.T) {
	sub := &mockSubmitter{err: order.ErrNoWebhook}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"a","discord":"b"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCheckout_SubmissionFailureIsGenericAndRetryable(t *testing.T) {
	sub := &mockSubmitter{err: &order.SubmissionError{StatusCode: 500}}
	h := setupRouter(&mockCartService{cart: domain.NewCart("cart-test")}, &mockCatalog{}, sub)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/checkout", `{"nick":"a","discord":"b"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "submission_failed", resp.Code)
	assert.NotContains(t, resp.Details, "500", "surface a non-technical message")
}
