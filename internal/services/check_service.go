package services

import (
	"errors"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type CheckRepositoryPort interface {
	ExistsForDay(userID uint, ruleID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	ReplaceForPair(userID uint, ruleID uint, dayStart time.Time) error
	DeleteForDay(userID uint, ruleID uint, dayStart time.Time, dayEnd time.Time) error
}

type CheckRuleRepository interface {
	FindByID(ruleID uint) (models.Rule, error)
}

type CheckService struct {
	checks   CheckRepositoryPort
	rules    CheckRuleRepository
	location *time.Location
}

func NewCheckService(checks CheckRepositoryPort, rules CheckRuleRepository, location *time.Location) *CheckService {
	return &CheckService{checks: checks, rules: rules, location: location}
}

// IsCheckedToday reports whether the user completed the rule on the given
// calendar day. Comparison is day-truncated, never exact-timestamp.
func (service *CheckService) IsCheckedToday(userID uint, ruleID uint, today Day) (bool, error) {
	dayStart, dayEnd := today.Range(service.location)
	return service.checks.ExistsForDay(userID, ruleID, dayStart, dayEnd)
}

// SetCheck toggles the user's completion mark for the rule today. The caller
// must be responsible for the rule today; double-checking and
// double-unchecking surface as conflicts and leave the rows untouched.
func (service *CheckService) SetCheck(userID uint, roomID uint, ruleID uint, today Day, desired bool) error {
	rule, err := service.rules.FindByID(ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	if rule.RoomID != roomID {
		return ErrForbiddenRoom
	}

	resolution := ResolveToday(rule, today, service.location)
	if !resolution.Contains(userID) {
		return ErrNotResponsibleToday
	}

	dayStart, dayEnd := today.Range(service.location)
	checked, err := service.checks.ExistsForDay(userID, ruleID, dayStart, dayEnd)
	if err != nil {
		return err
	}

	if desired {
		if checked {
			return ErrAlreadyChecked
		}
		return service.checks.ReplaceForPair(userID, ruleID, dayStart)
	}

	if !checked {
		return ErrAlreadyUnchecked
	}
	return service.checks.DeleteForDay(userID, ruleID, dayStart, dayEnd)
}
