package services

import (
	"errors"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type QuizRepositoryPort interface {
	ListTypes() ([]models.PersonalityType, error)
	FindTypeByID(typeID uint) (models.PersonalityType, error)
	FindTypeByDimension(dimension int) (models.PersonalityType, error)
	ListQuestions() ([]models.QuizQuestion, error)
}

type QuizUserRepository interface {
	UpdateQuizResult(userID uint, typeID uint, score []int, completedAt time.Time) error
}

type QuizService struct {
	catalog QuizRepositoryPort
	users   QuizUserRepository
}

func NewQuizService(catalog QuizRepositoryPort, users QuizUserRepository) *QuizService {
	return &QuizService{catalog: catalog, users: users}
}

func (service *QuizService) ListTypes() ([]models.PersonalityType, error) {
	return service.catalog.ListTypes()
}

func (service *QuizService) TypeByID(typeID uint) (models.PersonalityType, error) {
	personalityType, err := service.catalog.FindTypeByID(typeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PersonalityType{}, ErrTypeNotFound
		}
		return models.PersonalityType{}, err
	}
	return personalityType, nil
}

func (service *QuizService) Questions() ([]models.QuizQuestion, error) {
	return service.catalog.ListQuestions()
}

// Submit scores the quiz: one option index (0 or 1) per question in position
// order. The option deltas sum into the 5-dim score vector and the highest
// dimension picks the type; earlier dimensions win ties. Retaking replaces
// the previous result.
func (service *QuizService) Submit(userID uint, answers []int) (models.PersonalityType, []int, error) {
	questions, err := service.catalog.ListQuestions()
	if err != nil {
		return models.PersonalityType{}, nil, err
	}
	if len(answers) != len(questions) {
		return models.PersonalityType{}, nil, ErrInvalidQuizAnswers
	}

	score := make([]int, models.TypeScoreDimensions)
	for index, question := range questions {
		var deltas []int
		switch answers[index] {
		case 0:
			deltas = question.FirstScores
		case 1:
			deltas = question.SecondScores
		default:
			return models.PersonalityType{}, nil, ErrInvalidQuizAnswers
		}
		for dimension := 0; dimension < models.TypeScoreDimensions && dimension < len(deltas); dimension++ {
			score[dimension] += deltas[dimension]
		}
	}

	winner := 0
	for dimension := 1; dimension < models.TypeScoreDimensions; dimension++ {
		if score[dimension] > score[winner] {
			winner = dimension
		}
	}

	assigned, err := service.catalog.FindTypeByDimension(winner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PersonalityType{}, nil, ErrTypeNotFound
		}
		return models.PersonalityType{}, nil, err
	}

	if err := service.users.UpdateQuizResult(userID, assigned.ID, score, time.Now()); err != nil {
		return models.PersonalityType{}, nil, err
	}
	return assigned, score, nil
}
