package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/models"
	"github.com/hous-app/hous-server/internal/services"
)

type userProfile struct {
	UserID              uint     `json:"userId"`
	Email               string   `json:"email"`
	Name                string   `json:"name"`
	Job                 string   `json:"job"`
	Bio                 string   `json:"bio"`
	Tags                []string `json:"tags"`
	RoomID              *uint    `json:"roomId"`
	TypeID              *uint    `json:"typeId"`
	NotificationEnabled bool     `json:"notification"`
}

func profileOf(user models.User) userProfile {
	tags := user.Tags
	if tags == nil {
		tags = []string{}
	}
	return userProfile{
		UserID:              user.ID,
		Email:               user.Email,
		Name:                user.Name,
		Job:                 user.Job,
		Bio:                 user.Bio,
		Tags:                tags,
		RoomID:              user.RoomID,
		TypeID:              user.TypeID,
		NotificationEnabled: user.NotificationEnabled,
	}
}

func (handler *Handler) GetMyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	return apiSuccess(c, fiber.StatusOK, "profile", profileOf(*user))
}

func (handler *Handler) UpdateMyProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.settingsService.UpdateProfile(user.ID, input); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "profile updated", nil)
}

func (handler *Handler) UpdateNotification(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input notificationInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.settingsService.UpdateNotification(user.ID, input.Enabled); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "notification updated", nil)
}

func (handler *Handler) UpdateFCMToken(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input fcmTokenInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.settingsService.UpdateFCMToken(user.ID, input.Token); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "token updated", nil)
}

// DeleteAccount leaves the user's room first so membership cascades run
// before the account row disappears.
func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	if user.HasRoom() {
		if err := handler.roomService.Leave(user.ID); err != nil {
			return respondServiceError(c, err)
		}
	}
	if err := handler.authService.DeleteAccount(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "account deleted", nil)
}
