package memstore

import (
	"context"
	"sort"
	"time"

	"fashionexpress/models"
	"fashionexpress/storage"
)

// Wishlist

func (s *Store) GetWishlistItems(_ context.Context, userID uint) ([]models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.WishlistItem{}
	for id := uint(1); id <= s.lastID.wishlistItem; id++ {
		if item, ok := s.wishlistItems[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) GetWishlistItemsWithProducts(_ context.Context, userID uint) ([]models.WishlistItemWithProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.WishlistItemWithProduct{}
	for id := uint(1); id <= s.lastID.wishlistItem; id++ {
		item, ok := s.wishlistItems[id]
		if !ok || item.UserID != userID {
			continue
		}
		product, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		out = append(out, models.WishlistItemWithProduct{WishlistItem: item, Product: product})
	}
	return out, nil
}

func (s *Store) AddToWishlist(_ context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.wishlistItems {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing := existing
			return &existing, nil
		}
	}
	s.lastID.wishlistItem++
	item.ID = s.lastID.wishlistItem
	s.wishlistItems[item.ID] = *item
	stored := *item
	return &stored, nil
}

func (s *Store) RemoveFromWishlist(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wishlistItems[id]; !ok {
		return false, nil
	}
	delete(s.wishlistItems, id)
	return true, nil
}

// Reviews

func (s *Store) GetProductReviews(_ context.Context, productID uint) ([]models.ReviewWithUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ReviewWithUser{}
	for _, r := range s.reviews {
		if r.ProductID != productID {
			continue
		}
		joined := models.ReviewWithUser{Review: r}
		if u, ok := s.users[r.UserID]; ok {
			joined.User.Name = u.Name
		}
		out = append(out, joined)
	}
	// Newest first for product pages.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateReview(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[review.ProductID]; !ok {
		return storage.ErrNotFound
	}
	s.lastID.review++
	review.ID = s.lastID.review
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	s.reviews[review.ID] = *review
	s.recomputeRating(review.ProductID)
	return nil
}
