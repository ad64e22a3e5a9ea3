package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionexpress/internal/sessions"
	"fashionexpress/models"
	"fashionexpress/storage"
	"fashionexpress/storage/memstore"
)

func newTestApp(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	sessionStore, err := sessions.New("")
	require.NoError(t, err)

	app := fiber.New()
	SetupRoutes(app, store, sessionStore)
	return app, store
}

func seedProduct(t *testing.T, store *memstore.Store, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Description: name, Price: price, Stock: stock, Brand: "TestBrand", Image: "x.jpg", CategoryID: 1}
	require.NoError(t, store.CreateProduct(context.Background(), p))
	return p
}

func doJSON(t *testing.T, app *fiber.App, method, path, cookie string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp, payload
}

// registerUser registers via the API and returns the session cookie issued
// by the auto-login.
func registerUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"username": username,
		"password": "password123",
		"email":    username + "@example.com",
		"name":     "Test " + username,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return fmt.Sprintf("%s=%s", c.Name, c.Value)
		}
	}
	t.Fatal("registration did not issue a session cookie")
	return ""
}

func TestRegisterLoginCurrentUser(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerUser(t, app, "alice")

	resp, payload := doJSON(t, app, http.MethodGet, "/api/auth/user", cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", payload["username"])

	// Without a session the identity endpoint rejects.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Login with the registered credentials issues a fresh session.
	resp, payload = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", payload["username"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	app, _ := newTestApp(t)
	registerUser(t, app, "bob")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/users/register", "", map[string]interface{}{
		"username": "bob",
		"password": "password123",
		"email":    "other@example.com",
		"name":     "Bob Again",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already exists", payload["error"])
}

func TestCartEndpoints(t *testing.T) {
	app, store := newTestApp(t)
	product := seedProduct(t, store, "Dress", 49.99, 3)
	cookie := registerUser(t, app, "carol")

	// Unauthenticated requests are rejected.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Missing product.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", cookie, map[string]interface{}{
		"product_id": 999, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Over stock.
	resp, payload := doJSON(t, app, http.MethodPost, "/api/cart", cookie, map[string]interface{}{
		"product_id": product.ID, "quantity": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Not enough stock available", payload["error"])

	// Happy path.
	resp, payload = doJSON(t, app, http.MethodPost, "/api/cart", cookie, map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	itemID := uint(data["id"].(float64))
	assert.Equal(t, float64(2), data["quantity"])

	// Repeat add merges instead of creating a second row.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/cart", cookie, map[string]interface{}{
		"product_id": product.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, payload = doJSON(t, app, http.MethodGet, "/api/cart", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := payload["data"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0].(map[string]interface{})["quantity"])

	// Another user may not touch the item.
	otherCookie := registerUser(t, app, "mallory")
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/cart/%d", itemID), otherCookie, map[string]interface{}{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/cart/%d", itemID), otherCookie, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Owner update over stock is rejected.
	resp, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/cart/%d", itemID), cookie, map[string]interface{}{
		"quantity": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Owner delete works.
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/cart/%d", itemID), cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderPlacement(t *testing.T) {
	app, store := newTestApp(t)
	product := seedProduct(t, store, "Everyday Tee", 100, 5)
	cookie := registerUser(t, app, "dave")

	_, _ = doJSON(t, app, http.MethodPost, "/api/cart", cookie, map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	})

	orderBody := map[string]interface{}{
		"orderData": map[string]interface{}{
			"address": "42 Market Street", "city": "Mumbai", "state": "Maharashtra",
			"pincode": "400001", "phone": "9876543210", "payment_method": "cod",
		},
		"items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 2},
		},
	}
	resp, payload := doJSON(t, app, http.MethodPost, "/api/orders", cookie, orderBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := payload["data"].(map[string]interface{})
	assert.Equal(t, float64(200), order["total"])
	assert.Equal(t, "pending", order["status"])
	orderID := uint(order["id"].(float64))

	// Stock decremented, cart cleared.
	got, err := store.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/cart", cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, payload["data"])

	// Order detail with items.
	resp, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := payload["data"].(map[string]interface{})
	items := detail["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(100), items[0].(map[string]interface{})["price"])

	// Tracking history with progress meta.
	resp, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d/tracking", orderID), cookie, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := payload["data"].([]interface{})
	require.Len(t, history, 1)
	assert.Equal(t, "Order Placed", history[0].(map[string]interface{})["status"])
	meta := payload["meta"].(map[string]interface{})
	assert.Equal(t, float64(20), meta["percent"])

	// Another user cannot read the order or its tracking.
	otherCookie := registerUser(t, app, "eve")
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), otherCookie, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d/tracking", orderID), otherCookie, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOrderValidation(t *testing.T) {
	app, store := newTestApp(t)
	product := seedProduct(t, store, "Scarce Coat", 100, 1)
	cookie := registerUser(t, app, "frank")

	orderData := map[string]interface{}{
		"address": "42 Market Street", "city": "Mumbai", "state": "Maharashtra",
		"pincode": "400001", "phone": "9876543210", "payment_method": "cod",
	}

	// Empty items.
	resp, payload := doJSON(t, app, http.MethodPost, "/api/orders", cookie, map[string]interface{}{
		"orderData": orderData,
		"items":     []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Order must contain at least one item", payload["error"])

	// Missing product.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/orders", cookie, map[string]interface{}{
		"orderData": orderData,
		"items":     []map[string]interface{}{{"product_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Insufficient stock names the product.
	resp, payload = doJSON(t, app, http.MethodPost, "/api/orders", cookie, map[string]interface{}{
		"orderData": orderData,
		"items":     []map[string]interface{}{{"product_id": product.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, payload["error"], "Scarce Coat")

	// Nothing was created and stock is intact.
	got, err := store.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

// contendedStore loses every reservation to a phantom concurrent checkout
// while the catalog itself still shows enough stock.
type contendedStore struct {
	storage.Store
}

func (s *contendedStore) ReserveStock(context.Context, []storage.StockLine) error {
	return storage.ErrInsufficientStock
}

func TestOrderReservationRaceMapsToBadRequest(t *testing.T) {
	mem := memstore.New()
	sessionStore, err := sessions.New("")
	require.NoError(t, err)
	app := fiber.New()
	SetupRoutes(app, &contendedStore{Store: mem}, sessionStore)

	product := seedProduct(t, mem, "Hot Item", 30, 5)
	cookie := registerUser(t, app, "kate")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/orders", cookie, map[string]interface{}{
		"orderData": map[string]interface{}{
			"address": "42 Market Street", "city": "Mumbai", "state": "Maharashtra",
			"pincode": "400001", "phone": "9876543210", "payment_method": "cod",
		},
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Not enough stock available", payload["error"])
}

func TestUpdateProfileEmptyBody(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerUser(t, app, "jill")

	resp, payload := doJSON(t, app, http.MethodPut, "/api/users/profile", cookie, map[string]interface{}{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jill", payload["username"])
}

func TestProductAndCategoryEndpoints(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	category := &models.Category{Name: "Women", Image: "w.jpg"}
	require.NoError(t, store.CreateCategory(ctx, category))
	seedProduct(t, store, "Summer Dress", 49.99, 5)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"], 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/categories/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/products?search=summer", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"], 1)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReviewUpdatesProductRating(t *testing.T) {
	app, store := newTestApp(t)
	product := seedProduct(t, store, "Handbag", 89.99, 5)
	cookie := registerUser(t, app, "gina")

	resp, payload := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/products/%d/reviews", product.ID), cookie, map[string]interface{}{
		"rating": 4, "comment": "Lovely bag",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := payload["data"].(map[string]interface{})
	updated := data["product"].(map[string]interface{})
	assert.Equal(t, float64(4), updated["ratings"])
	assert.Equal(t, float64(1), updated["num_reviews"])

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/products/%d/reviews", product.ID), cookie, map[string]interface{}{
		"rating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, payload = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/reviews", product.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reviews := payload["data"].([]interface{})
	require.Len(t, reviews, 1)
	assert.Equal(t, "Test gina", reviews[0].(map[string]interface{})["user"].(map[string]interface{})["name"])
}

func TestWishlistEndpoints(t *testing.T) {
	app, store := newTestApp(t)
	product := seedProduct(t, store, "Running Shoes", 79.99, 5)
	cookie := registerUser(t, app, "henry")

	resp, payload := doJSON(t, app, http.MethodPost, "/api/wishlist", cookie, map[string]interface{}{
		"product_id": product.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID := uint(payload["data"].(map[string]interface{})["id"].(float64))

	resp, payload = doJSON(t, app, http.MethodGet, "/api/wishlist", cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["data"], 1)

	// Another user's delete sees not-found, not someone else's row.
	otherCookie := registerUser(t, app, "iris")
	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", itemID), otherCookie, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", itemID), cookie, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
