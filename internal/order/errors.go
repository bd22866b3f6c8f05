package order

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to submit")
	ErrMissingIdentity    = errors.New("nick and discord handle are required")
	ErrNoWebhook          = errors.New("order webhook is not configured")
	ErrSubmissionInFlight = errors.New("a submission for this cart is already in flight")
)

// StockConflictError reports a line that exceeds freshly re-read
// availability at checkout time: the feed moved between "add to cart"
// and "press checkout".
type StockConflictError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict on %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// SubmissionError wraps a network or endpoint failure during dispatch.
// The cart is preserved and the user may retry.
type SubmissionError struct {
	StatusCode int // 0 on transport failure
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("order submission failed: endpoint returned %d", e.StatusCode)
	}
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
