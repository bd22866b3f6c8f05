package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/repository"
	"github.com/RuneterraShadow/site-encomendas-patos/internal/stock"
)

type mockRepository struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
	err   error
	saves int
}

func newMockRepository() *mockRepository {
	return &mockRepository{carts: make(map[string]*domain.Cart)}
}

func (m *mockRepository) Load(_ context.Context, cartID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	clone := *cart
	clone.Lines = append([]domain.CartLine(nil), cart.Lines...)
	return &clone, nil
}

func (m *mockRepository) Save(_ context.Context, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.carts[cart.ID] = cart
	return nil
}

func (m *mockRepository) Delete(_ context.Context, cartID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, cartID)
	return nil
}

type mockStocks struct {
	m   sync.RWMutex
	idx stock.Index
}

func newMockStocks(products ...domain.Product) *mockStocks {
	return &mockStocks{idx: stock.Build(products)}
}

func (m *mockStocks) StockIndex() stock.Index {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.idx
}

func (m *mockStocks) install(products ...domain.Product) {
	m.m.Lock()
	defer m.m.Unlock()
	m.idx = stock.Build(products)
}

func product(id string, price string, stockQty *int) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "Produto " + id,
		Price: decimal.RequireFromString(price),
		Stock: stockQty,
	}
}

func TestAddItem_NewLine(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, newMockStocks())

	cart, err := sut.AddItem(context.Background(), "c1", product("sku-1", "19.90", nil), 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "sku-1", cart.Lines[0].ProductID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.RequireFromString("19.90")))
	assert.Equal(t, 1, repo.saves, "mutation must persist")
}

func TestAddItem_MergesAndClamps(t *testing.T) {
	repo := newMockRepository()
	stocks := newMockStocks(product("sku-1", "10", intPtr(3)))
	sut := NewService(repo, stocks)
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", intPtr(3)), 2)
	require.NoError(t, err)

	// 2 + 2 = 4 exceeds the 3 in stock: clamped, not rejected.
	cart, err := sut.AddItem(ctx, "c1", product("sku-1", "10", intPtr(3)), 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
}

func TestAddItem_OutOfStockProductYieldsNoLine(t *testing.T) {
	stocks := newMockStocks(product("sku-1", "10", intPtr(0)))
	sut := NewService(newMockRepository(), stocks)

	cart, err := sut.AddItem(context.Background(), "c1", product("sku-1", "10", intPtr(0)), 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	repo := newMockRepository()
	sut := NewService(repo, newMockStocks())

	for _, qty := range []int{0, -1, -99} {
		_, err := sut.AddItem(context.Background(), "c1", product("sku-1", "10", nil), qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Zero(t, repo.saves, "rejected input must not change state")
}

func TestAddItem_KeepsAgreedPriceOnIncrement(t *testing.T) {
	sut := NewService(newMockRepository(), newMockStocks())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10.00", nil), 1)
	require.NoError(t, err)

	// The catalog price changed; the line keeps the add-time price.
	cart, err := sut.AddItem(ctx, "c1", product("sku-1", "15.00", nil), 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	sut := NewService(newMockRepository(), newMockStocks())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", nil), 2)
	require.NoError(t, err)

	cart, err := sut.SetQuantity(ctx, "c1", "sku-1", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestSetQuantity_ReclampsAgainstCurrentIndex(t *testing.T) {
	stocks := newMockStocks(product("sku-1", "10", intPtr(4)))
	sut := NewService(newMockRepository(), stocks)
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", intPtr(4)), 1)
	require.NoError(t, err)

	cart, err := sut.SetQuantity(ctx, "c1", "sku-1", 10)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
}

func TestGet_ReconcilesAfterFeedUpdate(t *testing.T) {
	repo := newMockRepository()
	stocks := newMockStocks(product("sku-1", "10", intPtr(5)))
	sut := NewService(repo, stocks)
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", intPtr(5)), 5)
	require.NoError(t, err)

	// Feed update: stock drops to 3 while the cart holds 5.
	stocks.install(product("sku-1", "10", intPtr(3)))

	cart, err := sut.Get(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	// The clamp was persisted, not just rendered.
	persisted, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, persisted.Lines[0].Quantity)
}

func TestGet_StockDropsToZeroRemovesLine(t *testing.T) {
	stocks := newMockStocks(product("sku-1", "10", intPtr(5)))
	sut := NewService(newMockRepository(), stocks)
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", intPtr(5)), 2)
	require.NoError(t, err)

	stocks.install(product("sku-1", "10", intPtr(0)))

	cart, err := sut.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestGet_UnknownCartIsEmpty(t *testing.T) {
	sut := NewService(newMockRepository(), newMockStocks())

	cart, err := sut.Get(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", cart.ID)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Count())
}

func TestGet_RepoError(t *testing.T) {
	repo := newMockRepository()
	repo.err = fmt.Errorf("connection refused")
	sut := NewService(repo, newMockStocks())

	_, err := sut.Get(context.Background(), "c1")
	require.ErrorContains(t, err, "connection refused")
}

func TestClear_EmptiesCart(t *testing.T) {
	sut := NewService(newMockRepository(), newMockStocks())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "10", nil), 3)
	require.NoError(t, err)

	require.NoError(t, sut.Clear(ctx, "c1"))

	cart, err := sut.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestDerivedViews_CountAndTotal(t *testing.T) {
	sut := NewService(newMockRepository(), newMockStocks())
	ctx := context.Background()

	_, err := sut.AddItem(ctx, "c1", product("sku-1", "19.90", nil), 2)
	require.NoError(t, err)
	cart, err := sut.AddItem(ctx, "c1", product("sku-2", "5.00", nil), 3)
	require.NoError(t, err)

	assert.Equal(t, 5, cart.Count())
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("54.80")))
}
