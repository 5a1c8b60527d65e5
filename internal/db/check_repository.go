package db

import (
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type CheckRepository struct {
	database *gorm.DB
}

func NewCheckRepository(database *gorm.DB) *CheckRepository {
	return &CheckRepository{database: database}
}

// ExistsForDay reports whether any check for the (user, rule) pair falls
// inside the [dayStart, dayEnd) interval.
func (repo *CheckRepository) ExistsForDay(userID uint, ruleID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Check{}).
		Where("user_id = ? AND rule_id = ? AND date >= ? AND date < ?", userID, ruleID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CheckRepository) CountForPair(userID uint, ruleID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Check{}).
		Where("user_id = ? AND rule_id = ?", userID, ruleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceForPair collapses the (user, rule) pair to a single check row dated
// with the given day start. Stale rows from earlier days are swept in the
// same transaction since the schema does not enforce uniqueness.
func (repo *CheckRepository) ReplaceForPair(userID uint, ruleID uint, dayStart time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND rule_id = ?", userID, ruleID).
			Delete(&models.Check{}).Error; err != nil {
			return err
		}
		check := models.Check{UserID: userID, RuleID: ruleID, Date: dayStart}
		return tx.Create(&check).Error
	})
}

// DeleteForDay removes every check for the (user, rule) pair inside the
// [dayStart, dayEnd) interval.
func (repo *CheckRepository) DeleteForDay(userID uint, ruleID uint, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.
		Where("user_id = ? AND rule_id = ? AND date >= ? AND date < ?", userID, ruleID, dayStart, dayEnd).
		Delete(&models.Check{}).Error
}

// ListUserChecksForDay returns the rule ids the user has checked inside the
// [dayStart, dayEnd) interval.
func (repo *CheckRepository) ListUserChecksForDay(userID uint, dayStart time.Time, dayEnd time.Time) ([]uint, error) {
	ruleIDs := make([]uint, 0)
	if err := repo.database.Model(&models.Check{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Pluck("rule_id", &ruleIDs).Error; err != nil {
		return nil, err
	}
	return ruleIDs, nil
}

// ListRoomChecksForDay returns every check row for the given rules inside
// the [dayStart, dayEnd) interval.
func (repo *CheckRepository) ListRoomChecksForDay(ruleIDs []uint, dayStart time.Time, dayEnd time.Time) ([]models.Check, error) {
	checks := make([]models.Check, 0)
	if len(ruleIDs) == 0 {
		return checks, nil
	}
	if err := repo.database.
		Where("rule_id IN ? AND date >= ? AND date < ?", ruleIDs, dayStart, dayEnd).
		Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
