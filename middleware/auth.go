package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionUserKey is the session entry holding the authenticated user id.
const SessionUserKey = "user_id"

// RequireAuth guards a route group: it resolves the session, pulls the user
// id out of it and stores it in Locals for handlers. Requests without a live
// session are rejected with 401.
func RequireAuth(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		userID, ok := sess.Get(SessionUserKey).(uint)
		if !ok || userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		c.Locals(SessionUserKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by RequireAuth.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(SessionUserKey).(uint)
	return userID, ok && userID != 0
}
