package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is constructed at submission time and sent to the fulfillment
// endpoint. It is never persisted locally after a successful submission.
type Order struct {
	ID        string
	Nick      string
	Discord   string
	Lines     []OrderLine
	Total     decimal.Decimal
	CreatedAt time.Time
}

// OrderLine is an immutable snapshot of a cart line at checkout.
type OrderLine struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
