package memstore

import (
	"context"
	"sort"
	"time"

	"fashionexpress/models"
	"fashionexpress/storage"
)

// CommitOrder creates the order, its items and the initial tracking record,
// then clears the user's cart. Under the store lock the whole write is one
// unit; a caller never observes a half-committed order.
func (s *Store) CommitOrder(_ context.Context, order *models.Order, items []models.OrderItem, initial models.OrderTracking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID.order++
	order.ID = s.lastID.order
	s.orders[order.ID] = *order

	for i := range items {
		s.lastID.orderItem++
		items[i].ID = s.lastID.orderItem
		items[i].OrderID = order.ID
		s.orderItems[items[i].ID] = items[i]
	}

	s.lastID.tracking++
	initial.ID = s.lastID.tracking
	initial.OrderID = order.ID
	if initial.Timestamp.IsZero() {
		initial.Timestamp = time.Now()
	}
	s.orderTracking[initial.ID] = initial

	s.clearCartLocked(order.UserID)
	return nil
}

func (s *Store) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &o, nil
}

func (s *Store) GetUserOrders(_ context.Context, userID uint) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) GetOrderItems(_ context.Context, orderID uint) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.OrderItem{}
	for id := uint(1); id <= s.lastID.orderItem; id++ {
		if item, ok := s.orderItems[id]; ok && item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) GetOrderWithItems(_ context.Context, orderID uint) (*models.OrderWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := &models.OrderWithItems{Order: o, Items: []models.OrderItemWithProduct{}}
	for id := uint(1); id <= s.lastID.orderItem; id++ {
		item, ok := s.orderItems[id]
		if !ok || item.OrderID != orderID {
			continue
		}
		joined := models.OrderItemWithProduct{OrderItem: item}
		if p, ok := s.products[item.ProductID]; ok {
			joined.Product = p
		}
		out.Items = append(out.Items, joined)
	}
	return out, nil
}

// AppendOrderStatus appends a tracking record and mirrors the status onto
// the order. Both writes happen under one lock.
func (s *Store) AppendOrderStatus(_ context.Context, orderID uint, status, description string) (*models.OrderTracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	s.lastID.tracking++
	rec := models.OrderTracking{
		ID:          s.lastID.tracking,
		OrderID:     orderID,
		Status:      status,
		Description: description,
		Timestamp:   time.Now(),
	}
	s.orderTracking[rec.ID] = rec

	o.Status = status
	s.orders[orderID] = o
	return &rec, nil
}

func (s *Store) GetOrderTracking(_ context.Context, orderID uint) ([]models.OrderTracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.OrderTracking{}
	for _, rec := range s.orderTracking {
		if rec.OrderID == orderID {
			out = append(out, rec)
		}
	}
	// Ascending timeline; IDs break timestamp ties since appends within the
	// same clock tick still have a definite order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
