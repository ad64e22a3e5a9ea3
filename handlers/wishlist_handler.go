package handlers

import (
	"errors"
	"strconv"

	"fashionexpress/middleware"
	"fashionexpress/models"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Store storage.Store
}

func NewWishlistHandler(store storage.Store) *WishlistHandler {
	return &WishlistHandler{Store: store}
}

// GetWishlist - GET /api/wishlist
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	items, err := h.Store.GetWishlistItemsWithProducts(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch wishlist"})
	}
	return c.JSON(fiber.Map{"data": items})
}

// AddToWishlist - POST /api/wishlist
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product ID is required"})
	}

	product, err := h.Store.GetProduct(c.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add to wishlist"})
	}

	item, err := h.Store.AddToWishlist(c.Context(), &models.WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not add to wishlist"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": models.WishlistItemWithProduct{
		WishlistItem: *item,
		Product:      *product,
	}})
}

// RemoveFromWishlist - DELETE /api/wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wishlist item ID"})
	}

	items, err := h.Store.GetWishlistItems(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove from wishlist"})
	}
	owned := false
	for _, item := range items {
		if item.ID == uint(id) {
			owned = true
			break
		}
	}
	if !owned {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wishlist item not found"})
	}

	deleted, err := h.Store.RemoveFromWishlist(c.Context(), uint(id))
	if err != nil || !deleted {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove from wishlist"})
	}
	return c.JSON(fiber.Map{"message": "Wishlist item removed successfully"})
}
