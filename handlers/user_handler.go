package handlers

import (
	"errors"
	"strings"

	"fashionexpress/middleware"
	"fashionexpress/models"
	"fashionexpress/storage"
	"fashionexpress/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type UserHandler struct {
	Store    storage.Store
	Sessions *session.Store
}

func NewUserHandler(store storage.Store, sessions *session.Store) *UserHandler {
	return &UserHandler{Store: store, Sessions: sessions}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

func (r *RegisterRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Username) == "":
		return "Username is required"
	case r.Password == "":
		return "Password is required"
	case strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@"):
		return "A valid email is required"
	case strings.TrimSpace(r.Name) == "":
		return "Name is required"
	}
	return ""
}

// Register creates a user and opens a session for it right away.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if _, err := h.Store.GetUserByUsername(c.Context(), req.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	}
	if _, err := h.Store.GetUserByEmail(c.Context(), req.Email); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	}
	if err := h.Store.CreateUser(c.Context(), &user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating user"})
	}

	// Auto login after registration
	sess, err := h.Sessions.Get(c)
	if err == nil {
		if err := sess.Regenerate(); err == nil {
			sess.Set(middleware.SessionUserKey, user.ID)
			if err := sess.Save(); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error during login after registration"})
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// GetProfile - GET /api/users/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	user, err := h.Store.GetUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateProfileRequest carries optional profile fields; empty values are
// left untouched.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// UpdateProfile - PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// Never hand an existing username or email to another account.
	if req.Username != "" {
		if existing, err := h.Store.GetUserByUsername(c.Context(), req.Username); err == nil && existing.ID != userID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
		}
	}
	if req.Email != "" {
		if existing, err := h.Store.GetUserByEmail(c.Context(), req.Email); err == nil && existing.ID != userID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already exists"})
		}
	}

	fields := map[string]interface{}{}
	for key, value := range map[string]string{
		"username": req.Username,
		"email":    req.Email,
		"name":     req.Name,
		"phone":    req.Phone,
		"address":  req.Address,
		"city":     req.City,
		"state":    req.State,
		"pincode":  req.Pincode,
	} {
		if value != "" {
			fields[key] = value
		}
	}

	// Nothing to change: echo the current profile instead of issuing an
	// empty update, which the relational backend rejects.
	if len(fields) == 0 {
		user, err := h.Store.GetUser(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.JSON(user)
	}

	user, err := h.Store.UpdateUser(c.Context(), userID, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating profile"})
	}
	return c.JSON(user)
}
