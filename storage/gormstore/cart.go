package gormstore

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fashionexpress/models"
	"fashionexpress/storage"
)

func (s *Store) GetCartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var out []models.CartItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetCartItemsWithProducts(ctx context.Context, userID uint) ([]models.CartItemWithProduct, error) {
	items, err := s.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []models.CartItemWithProduct{}
	for _, item := range items {
		var product models.Product
		if err := s.db.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Orphaned row: skip instead of failing the whole cart read.
				log.Printf("cart item %d references missing product %d, skipping", item.ID, item.ProductID)
				continue
			}
			return nil, err
		}
		out = append(out, models.CartItemWithProduct{CartItem: item, Product: product})
	}
	return out, nil
}

func (s *Store) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// AddToCart upserts on the (user_id, product_id) unique index: a conflicting
// insert becomes an atomic quantity increment, so concurrent adds for the
// same product never create a second row.
func (s *Store) AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": clause.Expr{SQL: "cart_items.quantity + excluded.quantity"},
		}),
	}).Create(item).Error
	if err != nil {
		return nil, translate(err)
	}

	// Re-read: on the merge path the struct does not carry the summed
	// quantity or the existing row's id.
	var stored models.CartItem
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&stored).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stored, nil
}

func (s *Store) UpdateCartItem(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	res := s.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetCartItem(ctx, id)
}

func (s *Store) RemoveFromCart(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.CartItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ClearCart(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
