package cart

import (
	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/stock"
)

// Reconcile restores the invariant "every line's quantity <= available
// stock" against the given index. Quantities are clamped down to the
// finite availability; lines clamped to zero are dropped; lines whose
// products have unlimited or unknown stock pass through unchanged.
//
// The function is pure and idempotent, and it never increases a
// quantity - only user actions do that, and those re-clamp against the
// current index themselves.
func Reconcile(lines []domain.CartLine, idx stock.Index) ([]domain.CartLine, bool) {
	out := make([]domain.CartLine, 0, len(lines))
	changed := false

	for _, l := range lines {
		avail, finite := idx.Available(l.ProductID)
		if !finite {
			out = append(out, l)
			continue
		}

		if l.Quantity > avail {
			changed = true
			if avail <= 0 {
				continue
			}
			l.Quantity = avail
		}
		out = append(out, l)
	}

	return out, changed
}
