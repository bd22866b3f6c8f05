package catalog

import (
	"sort"
	"sync"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/stock"
)

// Store holds the most recent full catalog snapshot. Each Install swaps
// the whole state at once - products, id lookup and stock index - so
// readers always see a view consistent with one feed emission.
type Store struct {
	mu       sync.RWMutex
	active   []domain.Product
	byID     map[string]domain.Product
	idx      stock.Index
	snapshot int
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]domain.Product),
	}
}

// Install replaces the current snapshot. The shopper listing keeps only
// active products ordered by sort key; the id lookup and the stock
// index cover every product so carts referencing deactivated products
// still reconcile correctly.
func (s *Store) Install(products []domain.Product) {
	byID := make(map[string]domain.Product, len(products))
	active := make([]domain.Product, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		if p.Active {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})

	idx := stock.Build(products)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
	s.byID = byID
	s.idx = idx
	s.snapshot++
}

// Products returns the active products of the current snapshot in sort
// order.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Product looks up any product of the current snapshot, active or not.
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// StockIndex returns the availability index derived from the current
// snapshot.
func (s *Store) StockIndex() stock.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Snapshot reports how many snapshots have been installed, for logging.
func (s *Store) Snapshot() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
