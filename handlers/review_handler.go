package handlers

import (
	"errors"
	"strconv"

	"fashionexpress/middleware"
	"fashionexpress/models"
	"fashionexpress/storage"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Store storage.Store
}

func NewReviewHandler(store storage.Store) *ReviewHandler {
	return &ReviewHandler{Store: store}
}

// GetProductReviews - GET /api/products/:id/reviews
func (h *ReviewHandler) GetProductReviews(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if _, err := h.Store.GetProduct(c.Context(), uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	reviews, err := h.Store.GetProductReviews(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}
	return c.JSON(fiber.Map{"data": reviews})
}

// CreateReview - POST /api/products/:id/reviews. Creating a review
// recomputes the product's aggregate rating.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil || productID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rating must be between 1 and 5"})
	}

	if _, err := h.Store.GetProduct(c.Context(), uint(productID)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create review"})
	}

	review := models.Review{
		UserID:    userID,
		ProductID: uint(productID),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Store.CreateReview(c.Context(), &review); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create review"})
	}

	product, err := h.Store.GetProduct(c.Context(), uint(productID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"review":  review,
		"product": product,
	}})
}
