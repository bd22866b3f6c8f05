package domain

import "github.com/shopspring/decimal"

// Product is a read-only snapshot from the catalog feed. The storefront
// never mutates products; the admin surface owns their lifecycle.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	PromoPrice  *decimal.Decimal
	Stock       *int // nil = unlimited
	Active      bool
	SortOrder   int
	ImageURL    string
	ImagePosX   float64
	ImagePosY   float64
	ImageZoom   float64
	Category    string
	Featured    bool
}

// OnPromo reports whether the promo price applies: it must be set,
// positive and strictly below the regular price.
func (p Product) OnPromo() bool {
	if p.PromoPrice == nil {
		return false
	}
	return p.PromoPrice.IsPositive() && p.PromoPrice.LessThan(p.Price)
}

// FinalPrice is the price a shopper pays right now.
func (p Product) FinalPrice() decimal.Decimal {
	if p.OnPromo() {
		return *p.PromoPrice
	}
	return p.Price
}
