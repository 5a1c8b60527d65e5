package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/services"
)

func (handler *Handler) GetMyToDo(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}

	toDos, err := handler.homeService.MyToDo(user.ID, roomID, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "to-dos", fiber.Map{"toDos": toDos})
}

func (handler *Handler) CreateRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input services.RuleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	rule, err := handler.ruleService.CreateRule(user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusCreated, "rule created", fiber.Map{
		"ruleId": rule.ID,
		"name":   rule.Name,
	})
}

func (handler *Handler) GetRuleDetail(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	ruleID, err := parseIDParam(c, "ruleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	detail, err := handler.homeService.Detail(roomID, ruleID, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "rule", detail)
}

func (handler *Handler) UpdateRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	ruleID, err := parseIDParam(c, "ruleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	var input services.RuleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.ruleService.UpdateRule(user.ID, ruleID, input); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "rule updated", nil)
}

func (handler *Handler) DeleteRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	ruleID, err := parseIDParam(c, "ruleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	if err := handler.ruleService.DeleteRule(user.ID, ruleID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "rule deleted", nil)
}

func (handler *Handler) SetTemporaryMembers(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	ruleID, err := parseIDParam(c, "ruleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	var input tmpMembersInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.ruleService.SetTemporaryMembers(user.ID, ruleID, input.MemberIDs); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "today's members updated", nil)
}

func (handler *Handler) CheckRule(c *fiber.Ctx) error {
	return handler.setCheck(c, true)
}

func (handler *Handler) UncheckRule(c *fiber.Ctx) error {
	return handler.setCheck(c, false)
}

func (handler *Handler) setCheck(c *fiber.Ctx, desired bool) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	ruleID, err := parseIDParam(c, "ruleID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	today := services.Today(handler.location)
	if err := handler.checkService.SetCheck(user.ID, roomID, ruleID, today, desired); err != nil {
		return respondServiceError(c, err)
	}
	if desired {
		return apiSuccess(c, fiber.StatusCreated, "checked", nil)
	}
	return apiSuccess(c, fiber.StatusOK, "unchecked", nil)
}
