// Package checkout implements order placement: validating requested items
// against the catalog, snapshotting prices, reserving stock and committing
// the order as a two-phase operation.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionexpress/internal/tracking"
	"fashionexpress/models"
	"fashionexpress/storage"
)

// DeliveryWindow is the promised delivery offset from order placement.
const DeliveryWindow = 24 * time.Hour

// ErrEmptyOrder rejects a checkout with no items.
var ErrEmptyOrder = errors.New("order must contain at least one item")

// ProductNotFoundError names the missing product of a failed checkout.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InsufficientStockError reports a line whose requested quantity exceeds the
// available stock. Recoverable by the client: reduce the quantity.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %q: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

// ItemRequest is one requested (product, quantity) line of a checkout.
type ItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// ShippingInfo carries the client-supplied delivery and payment fields. The
// payment method is a label only; no gateway is involved.
type ShippingInfo struct {
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// PlaceOrder validates every requested line, reserves stock for all of them
// atomically and commits the order. The total is computed server-side from
// the unit price at the time of purchase (discount price when set); later
// catalog price changes never alter the order.
//
// Two phases: first the reservation decrements stock for all lines or for
// none, so a failure on any line leaves the catalog untouched; then the
// order, its items, the initial tracking record and the cart clear commit as
// one transaction. If the commit fails the reservation is released.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, shipping ShippingInfo, items []ItemRequest) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var (
		total      float64
		lines      = make([]storage.StockLine, 0, len(items))
		orderItems = make([]models.OrderItem, 0, len(items))
	)

	for _, item := range items {
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, &ProductNotFoundError{ProductID: item.ProductID}
			}
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}

		unitPrice := product.UnitPrice()
		total += unitPrice * float64(item.Quantity)

		lines = append(lines, storage.StockLine{ProductID: item.ProductID, Quantity: item.Quantity})
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     unitPrice,
		})
	}

	if err := s.store.ReserveStock(ctx, lines); err != nil {
		// A concurrent checkout may have taken the stock between validation
		// and reservation. Re-derive the precise failure for the client.
		if errors.Is(err, storage.ErrInsufficientStock) || errors.Is(err, storage.ErrNotFound) {
			return nil, s.describeReservationFailure(ctx, items, err)
		}
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		UserID:             userID,
		Status:             "pending",
		Total:              total,
		Address:            shipping.Address,
		City:               shipping.City,
		State:              shipping.State,
		Pincode:            shipping.Pincode,
		Phone:              shipping.Phone,
		PaymentMethod:      shipping.PaymentMethod,
		PaymentStatus:      "pending",
		CreatedAt:          now,
		DeliveryExpectedBy: now.Add(DeliveryWindow),
	}
	initial := models.OrderTracking{
		Status:      tracking.StatusPlaced,
		Description: tracking.PlacedDescription,
		Timestamp:   now,
	}

	if err := s.store.CommitOrder(ctx, order, orderItems, initial); err != nil {
		// Compensate: hand the reserved stock back.
		if releaseErr := s.store.ReleaseStock(ctx, lines); releaseErr != nil {
			return nil, fmt.Errorf("commit failed: %v (stock release also failed: %w)", err, releaseErr)
		}
		return nil, err
	}

	return order, nil
}

// describeReservationFailure re-checks the requested lines to name the
// offending product. Falls back to the raw reservation error when the race
// has already resolved.
func (s *Service) describeReservationFailure(ctx context.Context, items []ItemRequest, reserveErr error) error {
	for _, item := range items {
		product, err := s.store.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}
			continue
		}
		if product.Stock < item.Quantity {
			return &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
	}
	return reserveErr
}
