package db

import (
	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type PersonalityRepository struct {
	database *gorm.DB
}

func NewPersonalityRepository(database *gorm.DB) *PersonalityRepository {
	return &PersonalityRepository{database: database}
}

func (repo *PersonalityRepository) ListTypes() ([]models.PersonalityType, error) {
	types := make([]models.PersonalityType, 0)
	if err := repo.database.Order("dimension ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (repo *PersonalityRepository) FindTypeByID(typeID uint) (models.PersonalityType, error) {
	var personalityType models.PersonalityType
	if err := repo.database.First(&personalityType, typeID).Error; err != nil {
		return models.PersonalityType{}, err
	}
	return personalityType, nil
}

func (repo *PersonalityRepository) FindTypeByDimension(dimension int) (models.PersonalityType, error) {
	var personalityType models.PersonalityType
	if err := repo.database.Where("dimension = ?", dimension).First(&personalityType).Error; err != nil {
		return models.PersonalityType{}, err
	}
	return personalityType, nil
}

func (repo *PersonalityRepository) ListQuestions() ([]models.QuizQuestion, error) {
	questions := make([]models.QuizQuestion, 0)
	if err := repo.database.Order("position ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
