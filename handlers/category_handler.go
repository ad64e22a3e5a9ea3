package handlers

import (
	"errors"
	"strconv"

	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Store storage.Store
}

func NewCategoryHandler(store storage.Store) *CategoryHandler {
	return &CategoryHandler{Store: store}
}

// GetCategories - GET /api/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.Store.GetAllCategories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch categories"})
	}
	return c.JSON(fiber.Map{"data": categories})
}

// GetCategory - GET /api/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.Store.GetCategory(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch category"})
	}
	return c.JSON(fiber.Map{"data": category})
}
