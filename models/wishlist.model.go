package models

type WishlistItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
}

type WishlistItemWithProduct struct {
	WishlistItem
	Product Product `json:"product"`
}
