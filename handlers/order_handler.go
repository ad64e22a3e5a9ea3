package handlers

import (
	"errors"
	"strconv"
	"strings"

	"fashionexpress/internal/checkout"
	"fashionexpress/internal/tracking"
	"fashionexpress/middleware"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Store    storage.Store
	Checkout *checkout.Service
	Tracking *tracking.Service
}

func NewOrderHandler(store storage.Store) *OrderHandler {
	return &OrderHandler{
		Store:    store,
		Checkout: checkout.NewService(store),
		Tracking: tracking.NewService(store),
	}
}

// CreateOrderRequest mirrors the checkout payload: shipping fields plus the
// requested items.
type CreateOrderRequest struct {
	OrderData checkout.ShippingInfo  `json:"orderData"`
	Items     []checkout.ItemRequest `json:"items"`
}

func (r *CreateOrderRequest) validate() string {
	switch {
	case strings.TrimSpace(r.OrderData.Address) == "":
		return "Address is required"
	case strings.TrimSpace(r.OrderData.City) == "":
		return "City is required"
	case strings.TrimSpace(r.OrderData.State) == "":
		return "State is required"
	case strings.TrimSpace(r.OrderData.Pincode) == "":
		return "Pincode is required"
	case strings.TrimSpace(r.OrderData.Phone) == "":
		return "Phone is required"
	case strings.TrimSpace(r.OrderData.PaymentMethod) == "":
		return "Payment method is required"
	}
	for _, item := range r.Items {
		if item.ProductID == 0 {
			return "Item product ID is required"
		}
		if item.Quantity < 1 {
			return "Item quantity must be at least 1"
		}
	}
	return ""
}

// CreateOrder - POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order must contain at least one item"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	order, err := h.Checkout.PlaceOrder(c.Context(), userID, req.OrderData, req.Items)
	if err != nil {
		var notFound *checkout.ProductNotFoundError
		var noStock *checkout.InsufficientStockError
		switch {
		case errors.Is(err, checkout.ErrEmptyOrder):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order must contain at least one item"})
		case errors.As(err, &notFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
		case errors.As(err, &noStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": noStock.Error()})
		// A reservation lost to a concurrent checkout can surface as a bare
		// sentinel when the race resolves before the re-check.
		case errors.Is(err, storage.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		case errors.Is(err, storage.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not enough stock available"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating order"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": order})
}

// GetOrders - GET /api/orders
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.Store.GetUserOrders(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}
	return c.JSON(fiber.Map{"data": orders})
}

// GetOrder - GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.Store.GetOrderWithItems(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch order"})
	}
	if order.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to view this order"})
	}
	return c.JSON(fiber.Map{"data": order})
}

// GetOrderTracking - GET /api/orders/:id/tracking
func (h *OrderHandler) GetOrderTracking(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.Store.GetOrder(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch order tracking"})
	}
	if order.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to view this order tracking"})
	}

	history, err := h.Tracking.History(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch order tracking"})
	}

	percent, step := tracking.Progress(order.Status)
	return c.JSON(fiber.Map{
		"data": history,
		"meta": fiber.Map{"status": order.Status, "percent": percent, "step": step},
	})
}
