package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fashionexpress/models"
	"fashionexpress/storage"
)

// Wishlist

func (s *Store) GetWishlistItems(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetWishlistItemsWithProducts(ctx context.Context, userID uint) ([]models.WishlistItemWithProduct, error) {
	items, err := s.GetWishlistItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []models.WishlistItemWithProduct{}
	for _, item := range items {
		var product models.Product
		if err := s.db.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, models.WishlistItemWithProduct{WishlistItem: item, Product: product})
	}
	return out, nil
}

func (s *Store) AddToWishlist(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {
	var existing models.WishlistItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.WishlistItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Reviews

func (s *Store) GetProductReviews(ctx context.Context, productID uint) ([]models.ReviewWithUser, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	out := []models.ReviewWithUser{}
	for _, r := range reviews {
		joined := models.ReviewWithUser{Review: r}
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, r.UserID).Error; err == nil {
			joined.User.Name = user.Name
		}
		out = append(out, joined)
	}
	return out, nil
}

// CreateReview inserts the review and recomputes the product's aggregate
// rating in the same transaction.
func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", review.ProductID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return storage.ErrNotFound
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
}
