package db

import (
	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type RuleCategoryRepository struct {
	database *gorm.DB
}

func NewRuleCategoryRepository(database *gorm.DB) *RuleCategoryRepository {
	return &RuleCategoryRepository{database: database}
}

func (repo *RuleCategoryRepository) FindByID(categoryID uint) (models.RuleCategory, error) {
	var category models.RuleCategory
	if err := repo.database.First(&category, categoryID).Error; err != nil {
		return models.RuleCategory{}, err
	}
	return category, nil
}

func (repo *RuleCategoryRepository) ListByRoom(roomID uint) ([]models.RuleCategory, error) {
	categories := make([]models.RuleCategory, 0)
	if err := repo.database.
		Where("room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (repo *RuleCategoryRepository) CountByRoom(roomID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.RuleCategory{}).
		Where("room_id = ?", roomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RuleCategoryRepository) ExistsByRoomAndName(roomID uint, name string, excludeID uint) (bool, error) {
	query := repo.database.Model(&models.RuleCategory{}).
		Where("room_id = ? AND name = ?", roomID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var matched int64
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Create inserts the category and bumps the room's category counter in the
// same transaction.
func (repo *RuleCategoryRepository) Create(category *models.RuleCategory) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", category.RoomID).
			Update("category_count", gorm.Expr("category_count + 1")).Error
	})
}

func (repo *RuleCategoryRepository) UpdateNameAndIcon(categoryID uint, name string, icon string) error {
	return repo.database.Model(&models.RuleCategory{}).
		Where("id = ?", categoryID).
		Updates(map[string]any{"name": name, "icon": icon}).Error
}

// DeleteCascade removes the category, its rules with their members and
// checks, and decrements the room's category counter.
func (repo *RuleCategoryRepository) DeleteCascade(categoryID uint, roomID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		ruleIDs := make([]uint, 0)
		if err := tx.Model(&models.Rule{}).
			Where("category_id = ?", categoryID).
			Pluck("id", &ruleIDs).Error; err != nil {
			return err
		}

		if len(ruleIDs) > 0 {
			if err := tx.Where("rule_id IN ?", ruleIDs).Delete(&models.Check{}).Error; err != nil {
				return err
			}
			if err := tx.Where("rule_id IN ?", ruleIDs).Delete(&models.RuleMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", ruleIDs).Delete(&models.Rule{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.RuleCategory{}, categoryID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", roomID).
			Update("category_count", gorm.Expr("category_count - 1")).Error
	})
}
