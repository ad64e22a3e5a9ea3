package handlers

import (
	"errors"
	"strconv"

	"fashionexpress/models"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Store storage.Store
}

func NewProductHandler(store storage.Store) *ProductHandler {
	return &ProductHandler{Store: store}
}

// GetProducts - GET /api/products?category=&search=&featured=
//
// Exactly one listing mode applies per request: category beats search beats
// featured. Filters are never combined; that matches the storefront's
// behavior and keeps the query a single tagged variant.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	query := storage.ProductQuery{Mode: storage.QueryAll}

	if raw := c.Query("category"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil || categoryID < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		query = storage.ProductQuery{Mode: storage.QueryByCategory, CategoryID: uint(categoryID)}
	} else if search := c.Query("search"); search != "" {
		query = storage.ProductQuery{Mode: storage.QueryBySearch, Search: search}
	} else if c.Query("featured") == "true" {
		query = storage.ProductQuery{Mode: storage.QueryFeatured}
	}

	products, err := h.Store.QueryProducts(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	// Optional page window on top of the selected mode.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	if page > 0 && limit > 0 {
		total := int64(len(products))
		start := (page - 1) * limit
		if start > len(products) {
			start = len(products)
		}
		end := start + limit
		if end > len(products) {
			end = len(products)
		}
		return c.JSON(fiber.Map{
			"data": products[start:end],
			"meta": models.NewPaginationMeta(page, limit, total),
		})
	}

	return c.JSON(fiber.Map{"data": products})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.Store.GetProduct(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch product"})
	}
	return c.JSON(fiber.Map{"data": product})
}
