package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fashionexpress/models"
	"fashionexpress/storage"
)

// CommitOrder writes the order, its items, the initial tracking record and
// clears the user's cart in a single transaction.
func (s *Store) CommitOrder(ctx context.Context, order *models.Order, items []models.OrderItem, initial models.OrderTracking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		initial.OrderID = order.ID
		if initial.Timestamp.IsZero() {
			initial.Timestamp = time.Now()
		}
		if err := tx.Create(&initial).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&models.CartItem{}).Error
	})
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *Store) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var out []models.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetOrderWithItems(ctx context.Context, orderID uint) (*models.OrderWithItems, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	out := &models.OrderWithItems{Order: *order, Items: []models.OrderItemWithProduct{}}
	for _, item := range items {
		joined := models.OrderItemWithProduct{OrderItem: item}
		var product models.Product
		if err := s.db.WithContext(ctx).First(&product, item.ProductID).Error; err == nil {
			joined.Product = product
		}
		out.Items = append(out.Items, joined)
	}
	return out, nil
}

// AppendOrderStatus inserts the tracking record and mirrors the status onto
// the parent order in one transaction.
func (s *Store) AppendOrderStatus(ctx context.Context, orderID uint, status, description string) (*models.OrderTracking, error) {
	rec := models.OrderTracking{
		OrderID:     orderID,
		Status:      status,
		Description: description,
		Timestamp:   time.Now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) GetOrderTracking(ctx context.Context, orderID uint) ([]models.OrderTracking, error) {
	var out []models.OrderTracking
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
