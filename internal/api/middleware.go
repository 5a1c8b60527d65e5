package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hous-app/hous-server/internal/models"
)

const contextUserKey = "currentUser"

// AuthRequired authenticates the Bearer token and loads the caller into the
// request context.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := handler.parseToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

// RoomRequired rejects callers who do not belong to a room yet.
func (handler *Handler) RoomRequired(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.HasRoom() {
		return apiError(c, fiber.StatusForbidden, "user does not belong to a room")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentRoomID(c *fiber.Ctx) (uint, bool) {
	user, ok := currentUser(c)
	if !ok || !user.HasRoom() {
		return 0, false
	}
	return *user.RoomID, true
}
