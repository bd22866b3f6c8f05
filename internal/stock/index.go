// Package stock holds the derived availability lookup. The index is an
// immutable value rebuilt wholesale from every catalog snapshot, so it
// is always consistent with the last fully-received catalog state.
package stock

import "github.com/RuneterraShadow/site-encomendas-patos/internal/domain"

// Index maps product ids to finite available quantities. Products with
// unlimited stock are not present.
type Index struct {
	avail map[string]int
}

// Build derives an index from a catalog snapshot. There is no
// incremental update path on purpose.
func Build(products []domain.Product) Index {
	avail := make(map[string]int, len(products))
	for _, p := range products {
		if p.Stock != nil {
			avail[p.ID] = *p.Stock
		}
	}
	return Index{avail: avail}
}

// Available returns the remaining units for a product. ok is false when
// the product's stock is unlimited or unknown to the current snapshot.
func (i Index) Available(productID string) (int, bool) {
	n, ok := i.avail[productID]
	return n, ok
}
