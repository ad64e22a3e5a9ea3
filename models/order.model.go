package models

import "time"

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Status string `gorm:"size:50;not null;default:'pending'" json:"status"`

	// Total is computed server-side at placement and never changes afterwards.
	Total float64 `gorm:"not null" json:"total"`

	Address string `gorm:"type:text;not null" json:"address"`
	City    string `gorm:"size:100;not null" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	Pincode string `gorm:"size:20;not null" json:"pincode"`
	Phone   string `gorm:"size:20;not null" json:"phone"`

	PaymentMethod string `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus string `gorm:"size:50;not null;default:'pending'" json:"payment_status"`

	CreatedAt          time.Time `json:"created_at"`
	DeliveryExpectedBy time.Time `json:"delivery_expected_by"`
}

// OrderItem stores the quantity and the unit price at the time the order was
// placed. Later catalog price changes never touch these rows.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// OrderTracking is one append-only audit entry in an order's status history.
// Rows are never updated or deleted.
type OrderTracking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"order_id"`
	Status      string    `gorm:"size:50;not null" json:"status"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
}

// OrderItemWithProduct joins an order line with its product for display.
type OrderItemWithProduct struct {
	OrderItem
	Product Product `json:"product"`
}

// OrderWithItems is the shape returned by GET /api/orders/:id.
type OrderWithItems struct {
	Order
	Items []OrderItemWithProduct `json:"items"`
}
