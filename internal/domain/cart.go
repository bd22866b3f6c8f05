package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a cart. Name and UnitPrice are
// denormalized at add-time on purpose: the price a shopper agreed to
// stays stable even if the catalog changes afterwards.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the client-held order basket: an ordered set of lines, unique
// by product id. It is persisted as a single blob and survives reloads.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(id string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// RemoveLine drops the line for productID if present, preserving order.
func (c *Cart) RemoveLine(productID string) {
	if i := c.Line(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the sum of all line quantities.
func (c *Cart) Count() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
