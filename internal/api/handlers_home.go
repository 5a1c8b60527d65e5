package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hous-app/hous-server/internal/services"
)

func (handler *Handler) GetHome(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}

	room, err := handler.repositories.Rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondServiceError(c, services.ErrRoomNotFound)
		}
		return respondServiceError(c, err)
	}

	view, err := handler.homeService.Home(*user, room, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "home", view)
}
