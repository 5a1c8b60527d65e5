package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/models"
	"github.com/hous-app/hous-server/internal/services"
)

type categoryView struct {
	CategoryID uint   `json:"categoryId"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	RuleCount  int    `json:"ruleCount"`
}

func categoryViewsOf(categories []models.RuleCategory) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView{
			CategoryID: category.ID,
			Name:       category.Name,
			Icon:       category.Icon,
			RuleCount:  category.RuleCount,
		})
	}
	return views
}

func (handler *Handler) ListCategories(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	categories, err := handler.ruleService.ListCategories(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "categories", fiber.Map{
		"categories": categoryViewsOf(categories),
	})
}

func (handler *Handler) CreateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	category, err := handler.ruleService.CreateCategory(user.ID, input.Name, input.Icon)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusCreated, "category created", categoryView{
		CategoryID: category.ID,
		Name:       category.Name,
		Icon:       category.Icon,
	})
}

func (handler *Handler) UpdateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	categoryID, err := parseIDParam(c, "categoryID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := handler.ruleService.UpdateCategory(user.ID, categoryID, input.Name, input.Icon); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "category updated", nil)
}

func (handler *Handler) DeleteCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}
	categoryID, err := parseIDParam(c, "categoryID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	if err := handler.ruleService.DeleteCategory(user.ID, categoryID); err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "category deleted", nil)
}

func (handler *Handler) GetCategoryRules(c *fiber.Ctx) error {
	roomID, ok := currentRoomID(c)
	if !ok {
		return respondServiceError(c, services.ErrNoRoom)
	}
	categoryID, err := parseIDParam(c, "categoryID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	rules, err := handler.homeService.CategoryRules(roomID, categoryID, services.Today(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "rules", fiber.Map{"rules": rules})
}
