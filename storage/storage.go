package storage

import (
	"context"
	"errors"

	"fashionexpress/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
	// ErrInsufficientStock is returned by ReserveStock when any requested
	// line exceeds the available stock. No stock is taken in that case.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// QueryMode selects exactly one way of listing products. The modes are
// mutually exclusive by design: category wins over search, search over
// featured, matching the observed behavior of the storefront.
type QueryMode int

const (
	QueryAll QueryMode = iota
	QueryByCategory
	QueryBySearch
	QueryFeatured
)

// ProductQuery is a tagged selection over the catalog.
type ProductQuery struct {
	Mode       QueryMode
	CategoryID uint
	Search     string
}

// StockLine is one (product, quantity) pair of a reservation.
type StockLine struct {
	ProductID uint
	Quantity  int
}

// Store is the persistence boundary for the whole application. Two
// implementations exist: gormstore (relational) and memstore (in-process
// maps). The backend is chosen once at startup and never mixed.
type Store interface {
	// Users
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error)

	// Categories
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error

	// Products
	QueryProducts(ctx context.Context, q ProductQuery) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error)

	// ReserveStock decrements stock for every line or for none of them.
	// Concurrent reservations against the same product serialize; stock
	// never goes negative. Returns ErrNotFound or ErrInsufficientStock.
	ReserveStock(ctx context.Context, lines []StockLine) error
	// ReleaseStock returns previously reserved stock. Compensation path for
	// a failed order commit.
	ReleaseStock(ctx context.Context, lines []StockLine) error

	// Cart
	GetCartItems(ctx context.Context, userID uint) ([]models.CartItem, error)
	GetCartItemsWithProducts(ctx context.Context, userID uint) ([]models.CartItemWithProduct, error)
	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	// AddToCart merges into an existing (user, product) row by incrementing
	// its quantity, or inserts a new row. Atomic per key.
	AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, id uint, quantity int) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) error

	// Orders. CommitOrder writes the order, its items, the initial tracking
	// record and clears the user's cart as one atomic unit.
	CommitOrder(ctx context.Context, order *models.Order, items []models.OrderItem, initial models.OrderTracking) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error)
	GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	GetOrderWithItems(ctx context.Context, orderID uint) (*models.OrderWithItems, error)

	// Tracking. AppendOrderStatus appends a tracking record and mirrors the
	// status onto the parent order as one atomic unit. Records are never
	// updated or deleted.
	AppendOrderStatus(ctx context.Context, orderID uint, status, description string) (*models.OrderTracking, error)
	GetOrderTracking(ctx context.Context, orderID uint) ([]models.OrderTracking, error)

	// Wishlist
	GetWishlistItems(ctx context.Context, userID uint) ([]models.WishlistItem, error)
	GetWishlistItemsWithProducts(ctx context.Context, userID uint) ([]models.WishlistItemWithProduct, error)
	AddToWishlist(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, id uint) (bool, error)

	// Reviews. CreateReview also recomputes the product's aggregate rating.
	GetProductReviews(ctx context.Context, productID uint) ([]models.ReviewWithUser, error)
	CreateReview(ctx context.Context, review *models.Review) error
}
