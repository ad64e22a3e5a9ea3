package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	Image         string    `gorm:"not null" json:"image"`
	CategoryID    uint      `gorm:"index;not null" json:"category_id"`
	Brand         string    `gorm:"size:100;not null" json:"brand"`
	Ratings       float64   `gorm:"default:0" json:"ratings"`
	NumReviews    int       `gorm:"default:0" json:"num_reviews"`
	IsFeatured    bool      `gorm:"default:false" json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
}

// UnitPrice is the price a buyer pays right now: the discount price when one
// is set, the list price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
