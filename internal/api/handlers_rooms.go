package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/services"
)

func (handler *Handler) CreateRoom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input roomCreateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	room, err := handler.roomService.Create(user.ID, input.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusCreated, "room created", fiber.Map{
		"roomId": room.ID,
		"name":   room.Name,
		"code":   room.Code,
	})
}

func (handler *Handler) JoinRoom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input roomJoinInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	room, err := handler.roomService.Join(user.ID, input.Code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "joined room", fiber.Map{
		"roomId": room.ID,
		"name":   room.Name,
	})
}

func (handler *Handler) GetRoomInfo(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	info, err := handler.roomService.Info(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "room", info)
}

func (handler *Handler) RenameRoom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input roomRenameInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.roomService.Rename(user.ID, input.Name); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "room renamed", nil)
}

func (handler *Handler) LeaveRoom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	if err := handler.roomService.Leave(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "left room", nil)
}

func (handler *Handler) GetRoomToday(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}

	rules, err := handler.homeService.RoomToday(roomID, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "today", fiber.Map{"rules": rules})
}
