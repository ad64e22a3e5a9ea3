package models

// CartItem holds one staged (product, quantity) pair for a user. The unique
// index guarantees at most one row per (user, product); repeat adds merge
// into the existing row.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
}

// CartItemWithProduct is the cart row joined with its live product, the shape
// returned by GET /api/cart.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}
