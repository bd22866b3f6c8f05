package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/repository"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/stock"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// StockProvider yields the index derived from the latest catalog
// snapshot. Implemented by catalog.Store.
type StockProvider interface {
	StockIndex() stock.Index
}

// Service owns all cart mutations. A single mutex serializes user
// actions against reconciliation so nothing ever observes a cart that
// violates the stock invariant; there is no parallelism to coordinate,
// only ordering.
type Service struct {
	mu     sync.Mutex
	repo   repository.CartRepository
	stocks StockProvider
	sfg    singleflight.Group // Prevents concurrent loads of the same cart
}

func NewService(repo repository.CartRepository, stocks StockProvider) *Service {
	return &Service{
		repo:   repo,
		stocks: stocks,
	}
}

// Get returns the reconciled cart for cartID. A cart that was clamped
// by reconciliation is persisted before being returned, so callers
// never render a transiently inconsistent basket.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.load(ctx, cartID)
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddItem adds qty units of product to the cart, merging with an
// existing line. The combined quantity is clamped against the current
// stock index; a clamp to zero removes the line entirely.
func (s *Service) AddItem(ctx context.Context, cartID string, product domain.Product, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if i := cart.Line(product.ID); i >= 0 {
		cart.Lines[i].Quantity += qty
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.FinalPrice(),
			Quantity:  qty,
			AddedAt:   time.Now(),
		})
	}

	if err := s.reconcileAndSave(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// SetQuantity replaces the quantity of an existing line. Zero or
// negative removes the line.
func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if qty <= 0 {
		cart.RemoveLine(productID)
	} else if i := cart.Line(productID); i >= 0 {
		cart.Lines[i].Quantity = qty
	}

	if err := s.reconcileAndSave(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem drops the line for productID unconditionally.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	return s.SetQuantity(ctx, cartID, productID, 0)
}

// Clear empties the cart. Called on explicit user action and after a
// successful order submission; nothing else destroys a cart.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

// load fetches the cart (an empty one when none is persisted yet) and
// reconciles it against the current stock index, persisting when the
// clamp changed anything. Callers must hold s.mu.
func (s *Service) load(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, cartID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return domain.NewCart(cartID), nil
	}
	if err != nil {
		return nil, err
	}

	lines, changed := Reconcile(cart.Lines, s.stocks.StockIndex())
	if changed {
		cart.Lines = lines
		if err := s.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("persist reconciled cart: %w", err)
		}
	}

	return cart, nil
}

// reconcileAndSave re-clamps after a mutation and persists the result.
// Callers must hold s.mu.
func (s *Service) reconcileAndSave(ctx context.Context, cart *domain.Cart) error {
	cart.Lines, _ = Reconcile(cart.Lines, s.stocks.StockIndex())

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}

	return nil
}
