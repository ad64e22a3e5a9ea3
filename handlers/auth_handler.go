package handlers

import (
	"errors"

	"fashionexpress/middleware"
	"fashionexpress/storage"
	"fashionexpress/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type AuthHandler struct {
	Store    storage.Store
	Sessions *session.Store
}

func NewAuthHandler(store storage.Store, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Store: store, Sessions: sessions}
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a server-side session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password are required"})
	}

	user, err := h.Store.GetUserByUsername(c.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	if err := h.openSession(c, user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not login"})
	}

	return c.JSON(user.Public())
}

// Logout destroys the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not logout"})
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// CurrentUser returns the identity behind the session, or 401.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	userID, ok := sess.Get(middleware.SessionUserKey).(uint)
	if !ok || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	user, err := h.Store.GetUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(user.Public())
}

// openSession rotates the session id and binds the user to it. Used by login
// and by registration's auto-login.
func (h *AuthHandler) openSession(c *fiber.Ctx, userID uint) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(middleware.SessionUserKey, userID)
	return sess.Save()
}
