package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionexpress/models"
	"fashionexpress/storage"
)

func seedProduct(t *testing.T, s *Store, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Description: name, Price: price, Stock: stock, Brand: "TestBrand", Image: "x.jpg", CategoryID: 1}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash", Name: username}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestAddToCartMergesRepeatAdds(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "alice")
	product := seedProduct(t, s, "Dress", 49.99, 10)

	first, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := s.GetCartItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartConcurrentAddsKeepOneRow(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "bob")
	product := seedProduct(t, s, "Shirt", 39.99, 100)

	const adds = 25
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := s.GetCartItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, adds, items[0].Quantity)
}

func TestReserveStockNeverOversells(t *testing.T) {
	s := New()
	ctx := context.Background()
	product := seedProduct(t, s, "Gown", 99.99, 5)

	const attempts = 12
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.ReserveStock(ctx, []storage.StockLine{{ProductID: product.ID, Quantity: 1}})
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, storage.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 5, succeeded)
	assert.Equal(t, attempts-5, failed)

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestReserveStockAllOrNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedProduct(t, s, "Jeans", 59.99, 10)
	b := seedProduct(t, s, "Saree", 149.99, 1)

	err := s.ReserveStock(ctx, []storage.StockLine{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 5},
	})
	require.ErrorIs(t, err, storage.ErrInsufficientStock)

	gotA, err := s.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, gotA.Stock, "first line must not be decremented when a later line fails")

	gotB, err := s.GetProduct(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Stock)
}

func TestReserveStockMissingProduct(t *testing.T) {
	s := New()
	err := s.ReserveStock(context.Background(), []storage.StockLine{{ProductID: 99, Quantity: 1}})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "carol")
	product := seedProduct(t, s, "Handbag", 89.99, 10)

	for _, rating := range []int{5, 4, 3} {
		err := s.CreateReview(ctx, &models.Review{UserID: user.ID, ProductID: product.ID, Rating: rating})
		require.NoError(t, err)
	}

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.Ratings)
	assert.Equal(t, 3, got.NumReviews)
}

func TestCreateReviewRoundsToOneDecimal(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "dave")
	product := seedProduct(t, s, "Shoes", 79.99, 10)

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, s.CreateReview(ctx, &models.Review{UserID: user.ID, ProductID: product.ID, Rating: rating}))
	}

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, got.Ratings) // mean 4.333... rounds to 4.3
}

func TestCommitOrderClearsCart(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "erin")
	product := seedProduct(t, s, "Coat", 159.99, 10)

	_, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	order := &models.Order{UserID: user.ID, Status: "pending", Total: 159.99, PaymentStatus: "pending"}
	items := []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 159.99}}
	initial := models.OrderTracking{Status: "Order Placed", Description: "Your order has been placed successfully."}
	require.NoError(t, s.CommitOrder(ctx, order, items, initial))
	require.NotZero(t, order.ID)

	cart, err := s.GetCartItems(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	history, err := s.GetOrderTracking(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Order Placed", history[0].Status)

	stored, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].OrderID)
}

func TestAppendOrderStatusMirrorsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "frank")

	order := &models.Order{UserID: user.ID, Status: "pending", Total: 10}
	require.NoError(t, s.CommitOrder(ctx, order, nil, models.OrderTracking{Status: "Order Placed", Description: "placed"}))

	rec, err := s.AppendOrderStatus(ctx, order.ID, "Shipped", "Your order is on the way.")
	require.NoError(t, err)
	assert.Equal(t, "Shipped", rec.Status)

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", got.Status)

	history, err := s.GetOrderTracking(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Order Placed", history[0].Status, "prior records are unchanged")
	assert.Equal(t, "Shipped", history[1].Status, "new record is the latest entry")
}

func TestAppendOrderStatusUnknownOrder(t *testing.T) {
	s := New()
	_, err := s.AppendOrderStatus(context.Background(), 42, "Shipped", "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "gina")
	product := seedProduct(t, s, "Gown", 100, 10)
	discount := 80.0
	_, err := s.UpdateProduct(ctx, product.ID, map[string]interface{}{"discount_price": discount})
	require.NoError(t, err)

	order := &models.Order{UserID: user.ID, Status: "pending", Total: 80}
	items := []models.OrderItem{{ProductID: product.ID, Quantity: 1, Price: 80}}
	require.NoError(t, s.CommitOrder(ctx, order, items, models.OrderTracking{Status: "Order Placed", Description: "placed"}))

	_, err = s.UpdateProduct(ctx, product.ID, map[string]interface{}{"price": 50.0})
	require.NoError(t, err)

	stored, err := s.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 80.0, stored[0].Price)
}

func TestGetCartItemsWithProductsSkipsOrphans(t *testing.T) {
	s := New()
	ctx := context.Background()
	user := seedUser(t, s, "henry")
	product := seedProduct(t, s, "Scarf", 19.99, 10)

	_, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: 777, Quantity: 1})
	require.NoError(t, err)

	items, err := s.GetCartItemsWithProducts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
}

func TestQueryProductsModes(t *testing.T) {
	s := New()
	ctx := context.Background()

	dress := &models.Product{Name: "Summer Dress", Description: "Floral print", Price: 49.99, Stock: 5, Brand: "StyleVista", Image: "x.jpg", CategoryID: 1, IsFeatured: true}
	shirt := &models.Product{Name: "Formal Shirt", Description: "Office wear", Price: 39.99, Stock: 5, Brand: "UrbanStyle", Image: "x.jpg", CategoryID: 2}
	require.NoError(t, s.CreateProduct(ctx, dress))
	require.NoError(t, s.CreateProduct(ctx, shirt))

	all, err := s.QueryProducts(ctx, storage.ProductQuery{Mode: storage.QueryAll})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCategory, err := s.QueryProducts(ctx, storage.ProductQuery{Mode: storage.QueryByCategory, CategoryID: 2})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Formal Shirt", byCategory[0].Name)

	// Search is case-insensitive and matches name, description and brand.
	for _, q := range []string{"summer", "FLORAL", "stylevista"} {
		found, err := s.QueryProducts(ctx, storage.ProductQuery{Mode: storage.QueryBySearch, Search: q})
		require.NoError(t, err)
		require.Len(t, found, 1, "query %q", q)
		assert.Equal(t, "Summer Dress", found[0].Name)
	}

	featured, err := s.QueryProducts(ctx, storage.ProductQuery{Mode: storage.QueryFeatured})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Summer Dress", featured[0].Name)
}
