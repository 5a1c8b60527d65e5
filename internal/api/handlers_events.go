package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/services"
)

func (handler *Handler) ListEvents(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}

	events, err := handler.homeService.UpcomingEvents(roomID, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "events", fiber.Map{"events": events})
}

func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}

	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	event, err := handler.eventService.Create(roomID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusCreated, "event created", fiber.Map{
		"eventId": event.ID,
		"name":    event.Name,
	})
}

func (handler *Handler) GetEventDetail(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	eventID, err := parseIDParam(c, "eventID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	detail, err := handler.eventService.Detail(roomID, eventID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "event", detail)
}

func (handler *Handler) UpdateEvent(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	eventID, err := parseIDParam(c, "eventID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.eventService.Update(roomID, eventID, input); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "event updated", nil)
}

func (handler *Handler) DeleteEvent(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	eventID, err := parseIDParam(c, "eventID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := handler.eventService.Delete(roomID, eventID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "event deleted", nil)
}

func (handler *Handler) JoinEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	eventID, err := parseIDParam(c, "eventID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := handler.eventService.Join(user.ID, roomID, eventID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "joined event", nil)
}

func (handler *Handler) LeaveEvent(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	eventID, err := parseIDParam(c, "eventID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := handler.eventService.Leave(user.ID, roomID, eventID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "left event", nil)
}
