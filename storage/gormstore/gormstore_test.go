package gormstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fashionexpress/config"
	"fashionexpress/models"
	"fashionexpress/storage"
)

func TestConfigTranslatesDriverErrors(t *testing.T) {
	// Without TranslateError the driver's unique-violation error never
	// becomes gorm.ErrDuplicatedKey and duplicates surface as 500s.
	assert.True(t, gormConfig().TranslateError)
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), storage.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), storage.ErrDuplicate)

	other := errors.New("connection refused")
	assert.Equal(t, other, translate(other))
	assert.NoError(t, translate(nil))
}

// openTestStore connects to the database named by TEST_DATABASE_URL and
// resets its schema. Tests that need a live Postgres skip without it.
func openTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, db, err := Open(dsn)
	require.NoError(t, err)
	require.NoError(t, config.ResetAndMigrate(db))
	return store, db
}

func seedTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "hash", Name: username}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedTestProduct(t *testing.T, s *Store, name string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Description: name, Price: 10, Stock: 5, Brand: "TestBrand", Image: "x.jpg", CategoryID: 1}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	seedTestUser(t, s, "dup")
	again := &models.User{Username: "dup", Email: "other@example.com", Password: "hash", Name: "Dup"}
	assert.ErrorIs(t, s.CreateUser(ctx, again), storage.ErrDuplicate)
}

func TestGetCartItemsWithProductsSkipsOnlyMissingProducts(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	user := seedTestUser(t, s, "cartuser")
	product := seedTestProduct(t, s, "Scarf")

	_, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID + 1000, Quantity: 1})
	require.NoError(t, err)

	items, err := s.GetCartItemsWithProducts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
}

func TestGetCartItemsWithProductsPropagatesBackendErrors(t *testing.T) {
	s, db := openTestStore(t)
	ctx := context.Background()

	user := seedTestUser(t, s, "brokenjoin")
	product := seedTestProduct(t, s, "Gloves")
	_, err := s.AddToCart(ctx, &models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// Breaking the products table makes the join fail with something other
	// than record-not-found; the read must surface it, not swallow it.
	require.NoError(t, db.Migrator().DropTable(&models.Product{}))

	_, err = s.GetCartItemsWithProducts(ctx, user.ID)
	assert.Error(t, err)
}
