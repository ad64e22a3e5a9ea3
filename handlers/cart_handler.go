package handlers

import (
	"errors"
	"strconv"

	"fashionexpress/middleware"
	"fashionexpress/models"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Store storage.Store
}

func NewCartHandler(store storage.Store) *CartHandler {
	return &CartHandler{Store: store}
}

// GetCart - GET /api/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	items, err := h.Store.GetCartItemsWithProducts(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddToCartRequest
type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToCart - POST /api/cart. Repeat adds for the same product merge into
// the existing row.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product ID is required"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := h.Store.GetProduct(c.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add to cart"})
	}
	if product.Stock < req.Quantity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not enough stock available"})
	}

	item, err := h.Store.AddToCart(c.Context(), &models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add to cart"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": models.CartItemWithProduct{
		CartItem: *item,
		Product:  *product,
	}})
}

// UpdateCartItem - PUT /api/cart/:id
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cart item ID"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must be at least 1"})
	}

	item, err := h.Store.GetCartItem(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cart item"})
	}
	if item.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to update this cart item"})
	}

	product, err := h.Store.GetProduct(c.Context(), item.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cart item"})
	}
	if product.Stock < req.Quantity {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Not enough stock available"})
	}

	updated, err := h.Store.UpdateCartItem(c.Context(), uint(id), req.Quantity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cart item"})
	}

	return c.JSON(fiber.Map{"data": models.CartItemWithProduct{
		CartItem: *updated,
		Product:  *product,
	}})
}

// RemoveFromCart - DELETE /api/cart/:id
func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid cart item ID"})
	}

	item, err := h.Store.GetCartItem(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete cart item"})
	}
	if item.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to delete this cart item"})
	}

	deleted, err := h.Store.RemoveFromCart(c.Context(), uint(id))
	if err != nil || !deleted {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete cart item"})
	}
	return c.JSON(fiber.Map{"message": "Cart item deleted successfully"})
}

// ClearCart - DELETE /api/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.Store.ClearCart(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not clear cart"})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared successfully"})
}
