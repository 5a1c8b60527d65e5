package db

import (
	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

// seedReferenceData inserts the static personality catalog on first start.
// Rows are matched by their natural key so restarting never duplicates them.
func seedReferenceData(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, builtin := range models.DefaultPersonalityTypes() {
			var existing int64
			if err := tx.Model(&models.PersonalityType{}).
				Where("dimension = ?", builtin.Dimension).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			record := models.PersonalityType{
				Dimension:   builtin.Dimension,
				Name:        builtin.Name,
				Color:       builtin.Color,
				Description: builtin.Description,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		for _, builtin := range models.DefaultQuizQuestions() {
			var existing int64
			if err := tx.Model(&models.QuizQuestion{}).
				Where("position = ?", builtin.Position).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			record := models.QuizQuestion{
				Position:     builtin.Position,
				Prompt:       builtin.Prompt,
				FirstOption:  builtin.FirstOption,
				FirstScores:  builtin.FirstScores,
				SecondOption: builtin.SecondOption,
				SecondScores: builtin.SecondScores,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
