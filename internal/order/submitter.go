package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/money"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/stock"
)

// Identity is the buyer contact captured at checkout.
type Identity struct {
	Nick    string
	Discord string
}

// Receipt acknowledges a successful submission.
type Receipt struct {
	OrderID string
	Status  Status
}

// CartStore is the slice of the cart service the submitter needs.
type CartStore interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

// StockProvider yields a fresh availability index at checkout time.
type StockProvider interface {
	StockIndex() stock.Index
}

// Submitter drives an order through validation and dispatch. At most
// one submission per cart is in flight at any time; there is no
// automatic retry - a failed submission leaves the cart untouched and
// the user resubmits.
type Submitter struct {
	carts      CartStore
	stocks     StockProvider
	money      money.Formatter
	webhookURL string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker[int]
	log        zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}

	now   func() time.Time
	newID func() string
}

func NewSubmitter(carts CartStore, stocks StockProvider, formatter money.Formatter, webhookURL string, timeout time.Duration, log zerolog.Logger) *Submitter {
	return &Submitter{
		carts:      carts,
		stocks:     stocks,
		money:      formatter,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
			Name: "order-webhook",
		}),
		log:      log,
		inFlight: make(map[string]struct{}),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Submit validates the cart against fresh stock, dispatches the order
// to the fulfillment endpoint and clears the cart on success. Any
// non-2xx response or transport failure preserves the cart and returns
// a retryable *SubmissionError.
func (s *Submitter) Submit(ctx context.Context, cartID string, identity Identity) (*Receipt, error) {
	if strings.TrimSpace(s.webhookURL) == "" {
		return nil, ErrNoWebhook
	}

	if err := s.acquire(cartID); err != nil {
		return nil, err
	}
	defer s.release(cartID)

	// Validating
	identity.Nick = strings.TrimSpace(identity.Nick)
	identity.Discord = strings.TrimSpace(identity.Discord)
	if identity.Nick == "" || identity.Discord == "" {
		return nil, ErrMissingIdentity
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart for submission: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// The feed can move between "add to cart" and "press checkout"
	// faster than the cart re-renders, so availability is re-read here.
	idx := s.stocks.StockIndex()
	for _, l := range cart.Lines {
		avail, finite := idx.Available(l.ProductID)
		if finite && l.Quantity > avail {
			return nil, &StockConflictError{
				ProductID: l.ProductID,
				Requested: l.Quantity,
				Available: avail,
			}
		}
	}

	// Dispatching
	o := buildOrder(s.newID(), identity, cart, s.now())
	statusCode, err := s.dispatch(ctx, o)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", o.ID).Str("status", StatusFailed.String()).Msg("order submission failed")
		return nil, err
	}

	// Succeeded: the cart is destroyed only here or on explicit clear.
	if err := s.carts.Clear(ctx, cartID); err != nil {
		// The order went through; an undeleted cart is recoverable.
		s.log.Error().Err(err).Str("order_id", o.ID).Msg("clearing cart after accepted order")
	}

	s.log.Info().
		Str("order_id", o.ID).
		Int("endpoint_status", statusCode).
		Int("items", len(o.Lines)).
		Str("status", StatusSucceeded.String()).
		Msg("order accepted by fulfillment endpoint")

	return &Receipt{OrderID: o.ID, Status: StatusSucceeded}, nil
}

func (s *Submitter) dispatch(ctx context.Context, o domain.Order) (int, error) {
	body, err := json.Marshal(buildPayload(o, s.money))
	if err != nil {
		return 0, &SubmissionError{Err: err}
	}

	statusCode, err := s.breaker.Execute(func() (int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", o.ID)

		resp, err := s.client.Do(req)
		if err != nil {
			return 0, err
		}
		defer resp.Body.Close()

		return resp.StatusCode, nil
	})
	if err != nil {
		return 0, &SubmissionError{Err: err}
	}

	if statusCode < 200 || statusCode > 299 {
		return statusCode, &SubmissionError{StatusCode: statusCode}
	}

	return statusCode, nil
}

func (s *Submitter) acquire(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[cartID]; busy {
		return ErrSubmissionInFlight
	}
	s.inFlight[cartID] = struct{}{}
	return nil
}

func (s *Submitter) release(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, cartID)
}
