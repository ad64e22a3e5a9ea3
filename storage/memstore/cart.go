package memstore

import (
	"context"
	"log"

	"fashionexpress/models"
	"fashionexpress/storage"
)

func (s *Store) GetCartItems(_ context.Context, userID uint) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CartItem{}
	for id := uint(1); id <= s.lastID.cartItem; id++ {
		if item, ok := s.cartItems[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) GetCartItemsWithProducts(_ context.Context, userID uint) ([]models.CartItemWithProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CartItemWithProduct{}
	for id := uint(1); id <= s.lastID.cartItem; id++ {
		item, ok := s.cartItems[id]
		if !ok || item.UserID != userID {
			continue
		}
		product, ok := s.products[item.ProductID]
		if !ok {
			// Orphaned row: the product is gone. Skip it rather than fail
			// the whole cart read.
			log.Printf("cart item %d references missing product %d, skipping", item.ID, item.ProductID)
			continue
		}
		out = append(out, models.CartItemWithProduct{CartItem: item, Product: product})
	}
	return out, nil
}

func (s *Store) GetCartItem(_ context.Context, id uint) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cartItems[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &item, nil
}

func (s *Store) AddToCart(_ context.Context, item *models.CartItem) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.cartItems {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			s.cartItems[id] = existing
			return &existing, nil
		}
	}

	s.lastID.cartItem++
	item.ID = s.lastID.cartItem
	s.cartItems[item.ID] = *item
	stored := *item
	return &stored, nil
}

func (s *Store) UpdateCartItem(_ context.Context, id uint, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cartItems[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	item.Quantity = quantity
	s.cartItems[id] = item
	return &item, nil
}

func (s *Store) RemoveFromCart(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cartItems[id]; !ok {
		return false, nil
	}
	delete(s.cartItems, id)
	return true, nil
}

func (s *Store) ClearCart(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCartLocked(userID)
	return nil
}

func (s *Store) clearCartLocked(userID uint) {
	for id, item := range s.cartItems {
		if item.UserID == userID {
			delete(s.cartItems, id)
		}
	}
}
