package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) SignUp(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.SignUp(input.Email, input.Password, input.Name)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return respondServiceError(c, err)
	}

	return apiSuccess(c, fiber.StatusCreated, "signed up", fiber.Map{
		"token": token,
		"user":  profileOf(user),
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return respondServiceError(c, err)
	}

	return apiSuccess(c, fiber.StatusOK, "logged in", fiber.Map{
		"token": token,
		"user":  profileOf(user),
	})
}
