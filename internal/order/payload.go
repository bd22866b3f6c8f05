package order

import (
	"time"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/money"
)

// payload is the wire contract of the fulfillment endpoint. Field names
// and shapes are fixed; changing them breaks the external worker.
type payload struct {
	Nick      string        `json:"nick"`
	Discord   string        `json:"discord"`
	Items     []payloadItem `json:"items"`
	TotalText string        `json:"totalText"`
	CreatedAt string        `json:"createdAt"`
}

type payloadItem struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Qty           int     `json:"qty"`
	UnitPrice     float64 `json:"unitPrice"`
	UnitPriceText string  `json:"unitPriceText"`
	SubtotalText  string  `json:"subtotalText"`
}

// buildOrder freezes the cart into an immutable order snapshot.
func buildOrder(id string, identity Identity, cart *domain.Cart, now time.Time) domain.Order {
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}

	return domain.Order{
		ID:        id,
		Nick:      identity.Nick,
		Discord:   identity.Discord,
		Lines:     lines,
		Total:     cart.Total(),
		CreatedAt: now,
	}
}

func buildPayload(o domain.Order, f money.Formatter) payload {
	items := make([]payloadItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, payloadItem{
			ProductID:     l.ProductID,
			Name:          l.Name,
			Qty:           l.Quantity,
			UnitPrice:     l.UnitPrice.InexactFloat64(),
			UnitPriceText: f.Format(l.UnitPrice),
			SubtotalText:  f.Format(l.Subtotal),
		})
	}

	return payload{
		Nick:      o.Nick,
		Discord:   o.Discord,
		Items:     items,
		TotalText: f.Format(o.Total),
		CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
