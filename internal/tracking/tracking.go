// Package tracking owns the order status ledger: the closed set of status
// labels, the progress mapping used by clients, and the append operation
// that keeps the order's status field and its history in lockstep.
package tracking

import (
	"context"
	"strings"

	"fashionexpress/models"
	"fashionexpress/storage"
)

// Status labels in forward order. The ledger does not reject skips or
// backward transitions; they are unusual but allowed.
const (
	StatusPlaced         = "Order Placed"
	StatusPacked         = "Packed"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
)

// PlacedDescription is the description of the record seeded at checkout.
const PlacedDescription = "Your order has been placed successfully."

// Progress maps a status label to the percentage and step index (0-4) the
// storefront renders. Unknown labels map to the first step.
func Progress(status string) (percent int, step int) {
	switch strings.ToLower(status) {
	case "pending", "order placed":
		return 20, 0
	case "processing", "packed":
		return 40, 1
	case "shipped":
		return 60, 2
	case "out for delivery":
		return 80, 3
	case "delivered":
		return 100, 4
	default:
		return 20, 0
	}
}

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Append adds a tracking record and mirrors the status onto the order. The
// two writes are one unit in the storage layer.
func (s *Service) Append(ctx context.Context, orderID uint, status, description string) (*models.OrderTracking, error) {
	return s.store.AppendOrderStatus(ctx, orderID, status, description)
}

// History returns the full audit trail of an order, oldest first.
func (s *Service) History(ctx context.Context, orderID uint) ([]models.OrderTracking, error) {
	return s.store.GetOrderTracking(ctx, orderID)
}
