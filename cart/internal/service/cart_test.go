package service

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/cart/internal/errors"
	"github.com/Alturino/storefront/cart/internal/metric"
	"github.com/Alturino/storefront/cart/internal/store"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/product/pkg/client"
)

type stubProductSource struct {
	mu       sync.Mutex
	products map[int64]client.Product
	err      error
}

func (s *stubProductSource) FindProductById(
	c context.Context,
	productId int64,
) (client.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return client.Product{}, s.err
	}
	product, ok := s.products[productId]
	if !ok {
		return client.Product{}, client.ErrProductNotFound
	}
	return product, nil
}

func (s *stubProductSource) setPrice(productId int64, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product := s.products[productId]
	product.Price = price
	s.products[productId] = product
}

func newTestService(products map[int64]client.Product) (CartService, *stubProductSource) {
	source := &stubProductSource{products: products}
	svc := NewCartService(
		store.NewCartStore(),
		source,
		metric.NewCartMetrics(prometheus.NewRegistry()),
	)
	return svc, source
}

func TestAddCartItemStockScenario(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{
		7: {ID: 7, Name: "Laptop Gaming", Price: decimal.NewFromFloat(1200.00), Stock: 5},
	})
	c := context.Background()

	item, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 7, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(3), item.Quantity)

	cart := svc.FindCartByUserId(c, "alice")
	require.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, int32(3), cart.Items[0].Quantity)

	_, err = svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 7, Quantity: 3})
	require.Error(t, err)
	var stockErr inErrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int32(5), stockErr.Available)
	assert.Equal(t, int32(3), stockErr.Reserved)
	assert.Equal(t, int32(3), stockErr.Requested)

	// the failed add must not partially apply
	cart = svc.FindCartByUserId(c, "alice")
	require.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, int32(3), cart.Items[0].Quantity)

	item, err = svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 7, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(5), item.Quantity)
}

func TestAddCartItemMergePinsPriceAtFirstAdd(t *testing.T) {
	svc, source := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Wireless Mouse", Price: decimal.NewFromFloat(35.99), Stock: 50},
	})
	c := context.Background()

	first, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 2})
	require.NoError(t, err)

	source.setPrice(1, decimal.NewFromFloat(99.99))

	merged, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, int32(5), merged.Quantity)
	assert.True(t, decimal.NewFromFloat(35.99).Equal(merged.Price))
	assert.True(t, decimal.NewFromFloat(179.95).Equal(merged.TotalPrice))

	cart := svc.FindCartByUserId(c, "alice")
	require.Equal(t, 1, cart.TotalItems)
}

func TestAddCartItemProductNotFound(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{})
	c := context.Background()

	_, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 404, Quantity: 1})
	require.ErrorIs(t, err, client.ErrProductNotFound)
	assert.Zero(t, svc.FindCartByUserId(c, "alice").TotalItems)
}

func TestAddCartItemProductSourceUnavailable(t *testing.T) {
	svc, source := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Monitor 4K", Price: decimal.NewFromFloat(450.00), Stock: 10},
	})
	source.err = client.ErrProductUnavailable
	c := context.Background()

	_, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 1})
	require.ErrorIs(t, err, client.ErrProductUnavailable)
	assert.Zero(t, svc.FindCartByUserId(c, "alice").TotalItems)
}

func TestFindCartByUserIdRoundsTotalToCents(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Sticker", Price: decimal.NewFromFloat(0.335), Stock: 100},
		2: {ID: 2, Name: "Pin", Price: decimal.NewFromFloat(0.50), Stock: 100},
	})
	c := context.Background()

	_, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 3})
	require.NoError(t, err)
	_, err = svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 2, Quantity: 1})
	require.NoError(t, err)

	// 0.335*3 + 0.50 = 1.505, half up on the cent boundary
	cart := svc.FindCartByUserId(c, "alice")
	assert.True(
		t,
		decimal.NewFromFloat(1.51).Equal(cart.TotalPrice),
		"expected 1.51 got %s",
		cart.TotalPrice,
	)
}

func TestFindCartByUserIdDefaultsToEmptyCart(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{})

	cart := svc.FindCartByUserId(context.Background(), "nobody")
	assert.Equal(t, "nobody", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.True(t, decimal.Zero.Equal(cart.TotalPrice))
}

func TestClearCartIsIdempotent(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Wireless Mouse", Price: decimal.NewFromFloat(35.99), Stock: 50},
	})
	c := context.Background()

	_, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 1})
	require.NoError(t, err)

	svc.ClearCart(c, "alice")
	svc.ClearCart(c, "alice")

	cart := svc.FindCartByUserId(c, "alice")
	assert.Empty(t, cart.Items)
	assert.True(t, decimal.Zero.Equal(cart.TotalPrice))
}

func TestRemoveCartItemErrors(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Wireless Mouse", Price: decimal.NewFromFloat(35.99), Stock: 50},
	})
	c := context.Background()

	err := svc.RemoveCartItem(c, request.RemoveCartItem{UserId: "alice", CartItemId: 1})
	require.ErrorIs(t, err, inErrors.ErrCartNotFound)

	item, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 1})
	require.NoError(t, err)

	err = svc.RemoveCartItem(c, request.RemoveCartItem{UserId: "alice", CartItemId: item.ID + 99})
	require.ErrorIs(t, err, inErrors.ErrCartItemNotFound)
	assert.Equal(t, 1, svc.FindCartByUserId(c, "alice").TotalItems)

	err = svc.RemoveCartItem(c, request.RemoveCartItem{UserId: "alice", CartItemId: item.ID})
	require.NoError(t, err)
	assert.Zero(t, svc.FindCartByUserId(c, "alice").TotalItems)
}

func TestFindAllCartsExcludesClearedCarts(t *testing.T) {
	svc, _ := newTestService(map[int64]client.Product{
		1: {ID: 1, Name: "Wireless Mouse", Price: decimal.NewFromFloat(35.99), Stock: 50},
	})
	c := context.Background()

	_, err := svc.AddCartItem(c, request.AddCartItem{UserId: "alice", ProductId: 1, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddCartItem(c, request.AddCartItem{UserId: "bob", ProductId: 1, Quantity: 2})
	require.NoError(t, err)

	svc.ClearCart(c, "bob")

	carts := svc.FindAllCarts(c)
	require.Len(t, carts, 1)
	assert.Equal(t, "alice", carts[0].UserID)
}

func TestConcurrentAddsForSameUserRespectStock(t *testing.T) {
	stock := int32(5)
	svc, _ := newTestService(map[int64]client.Product{
		7: {ID: 7, Name: "Laptop Gaming", Price: decimal.NewFromFloat(1200.00), Stock: stock},
	})
	c := context.Background()

	goroutines := 10
	results := make(chan error, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddCartItem(
				c,
				request.AddCartItem{UserId: "alice", ProductId: 7, Quantity: 1},
			)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var stockErr inErrors.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
	}
	assert.Equal(t, int(stock), succeeded)

	cart := svc.FindCartByUserId(c, "alice")
	require.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, stock, cart.Items[0].Quantity)
}
