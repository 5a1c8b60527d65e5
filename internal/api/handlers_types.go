package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hous-app/hous-server/internal/models"
	"github.com/hous-app/hous-server/internal/services"
)

type typeView struct {
	TypeID      uint   `json:"typeId"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type questionView struct {
	Position     int    `json:"position"`
	Prompt       string `json:"prompt"`
	FirstOption  string `json:"firstOption"`
	SecondOption string `json:"secondOption"`
}

func typeViewOf(personalityType models.PersonalityType) typeView {
	return typeView{
		TypeID:      personalityType.ID,
		Name:        personalityType.Name,
		Color:       personalityType.Color,
		Description: personalityType.Description,
	}
}

func (handler *Handler) ListTypes(c *fiber.Ctx) error {
	types, err := handler.quizService.ListTypes()
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]typeView, 0, len(types))
	for _, personalityType := range types {
		views = append(views, typeViewOf(personalityType))
	}
	return apiSuccess(c, fiber.StatusOK, "types", fiber.Map{"types": views})
}

func (handler *Handler) GetType(c *fiber.Ctx) error {
	typeID, err := parseIDParam(c, "typeID")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid type id")
	}

	personalityType, err := handler.quizService.TypeByID(typeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "type", typeViewOf(personalityType))
}

func (handler *Handler) GetQuizQuestions(c *fiber.Ctx) error {
	questions, err := handler.quizService.Questions()
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]questionView, 0, len(questions))
	for _, question := range questions {
		views = append(views, questionView{
			Position:     question.Position,
			Prompt:       question.Prompt,
			FirstOption:  question.FirstOption,
			SecondOption: question.SecondOption,
		})
	}
	return apiSuccess(c, fiber.StatusOK, "questions", fiber.Map{"questions": views})
}

func (handler *Handler) SubmitQuiz(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondServiceError(c, services.ErrUnauthorized)
	}

	var input quizSubmitInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, score, err := handler.quizService.Submit(user.ID, input.Answers)
	if err != nil {
		return respondServiceError(c, err)
	}
	return apiSuccess(c, fiber.StatusOK, "quiz submitted", fiber.Map{
		"type":  typeViewOf(result),
		"score": score,
	})
}
