package db

import (
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type RuleRepository struct {
	database *gorm.DB
}

func NewRuleRepository(database *gorm.DB) *RuleRepository {
	return &RuleRepository{database: database}
}

func (repo *RuleRepository) FindByID(ruleID uint) (models.Rule, error) {
	var rule models.Rule
	if err := repo.database.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("rule_members.id ASC") }).
		First(&rule, ruleID).Error; err != nil {
		return models.Rule{}, err
	}
	return rule, nil
}

func (repo *RuleRepository) ListByRoom(roomID uint) ([]models.Rule, error) {
	rules := make([]models.Rule, 0)
	if err := repo.database.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("rule_members.id ASC") }).
		Where("room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (repo *RuleRepository) ListByCategory(categoryID uint) ([]models.Rule, error) {
	rules := make([]models.Rule, 0)
	if err := repo.database.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("rule_members.id ASC") }).
		Where("category_id = ?", categoryID).
		Order("created_at ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ListKeyRules returns the room's key rules in creation order, up to limit
// when limit is positive.
func (repo *RuleRepository) ListKeyRules(roomID uint, limit int) ([]models.Rule, error) {
	query := repo.database.
		Where("room_id = ? AND is_key_rule = ?", roomID, true).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	rules := make([]models.Rule, 0)
	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (repo *RuleRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Rule{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RuleRepository) CountNotificationEnabled(roomID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Rule{}).
		Where("room_id = ? AND notification_enabled = ?", roomID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *RuleRepository) ListNotificationEnabled() ([]models.Rule, error) {
	rules := make([]models.Rule, 0)
	if err := repo.database.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("rule_members.id ASC") }).
		Where("notification_enabled = ?", true).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Create inserts the rule with its roster and bumps the category's rule
// counter in the same transaction.
func (repo *RuleRepository) Create(rule *models.Rule) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rule).Error; err != nil {
			return err
		}
		return tx.Model(&models.RuleCategory{}).
			Where("id = ?", rule.CategoryID).
			Update("rule_count", gorm.Expr("rule_count + 1")).Error
	})
}

// Update rewrites the rule row and replaces its roster wholesale. When the
// rule moved to another category both rule counters move with it.
func (repo *RuleRepository) Update(rule *models.Rule, previousCategoryID uint, members []models.RuleMember) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", rule.ID).Delete(&models.RuleMember{}).Error; err != nil {
			return err
		}
		for index := range members {
			members[index].ID = 0
			members[index].RuleID = rule.ID
			if err := tx.Create(&members[index]).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Rule{}).Where("id = ?", rule.ID).Updates(map[string]any{
			"name":                 rule.Name,
			"category_id":          rule.CategoryID,
			"notification_enabled": rule.NotificationEnabled,
			"tmp_member_ids":       nil,
			"tmp_updated_at":       nil,
		}).Error; err != nil {
			return err
		}

		if previousCategoryID != rule.CategoryID {
			if err := tx.Model(&models.RuleCategory{}).
				Where("id = ?", previousCategoryID).
				Update("rule_count", gorm.Expr("rule_count - 1")).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.RuleCategory{}).
				Where("id = ?", rule.CategoryID).
				Update("rule_count", gorm.Expr("rule_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetTemporaryMembers replaces the same-day override wholesale and stamps
// when it was set.
func (repo *RuleRepository) SetTemporaryMembers(ruleID uint, memberIDs []uint, updatedAt time.Time) error {
	var rule models.Rule
	if err := repo.database.First(&rule, ruleID).Error; err != nil {
		return err
	}
	rule.TmpMemberIDs = memberIDs
	rule.TmpUpdatedAt = &updatedAt
	return repo.database.Save(&rule).Error
}

// DeleteCascade removes the rule, its roster and all referencing checks, and
// decrements the category's rule counter.
func (repo *RuleRepository) DeleteCascade(ruleID uint, categoryID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_id = ?", ruleID).Delete(&models.Check{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rule_id = ?", ruleID).Delete(&models.RuleMember{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Rule{}, ruleID).Error; err != nil {
			return err
		}
		return tx.Model(&models.RuleCategory{}).
			Where("id = ?", categoryID).
			Update("rule_count", gorm.Expr("rule_count - 1")).Error
	})
}
