package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type RuleRepositoryPort interface {
	FindByID(ruleID uint) (models.Rule, error)
	ListByRoom(roomID uint) ([]models.Rule, error)
	ListByCategory(categoryID uint) ([]models.Rule, error)
	CountByCategory(categoryID uint) (int64, error)
	CountNotificationEnabled(roomID uint) (int64, error)
	Create(rule *models.Rule) error
	Update(rule *models.Rule, previousCategoryID uint, members []models.RuleMember) error
	SetTemporaryMembers(ruleID uint, memberIDs []uint, updatedAt time.Time) error
	DeleteCascade(ruleID uint, categoryID uint) error
}

type CategoryRepositoryPort interface {
	FindByID(categoryID uint) (models.RuleCategory, error)
	ListByRoom(roomID uint) ([]models.RuleCategory, error)
	CountByRoom(roomID uint) (int64, error)
	ExistsByRoomAndName(roomID uint, name string, excludeID uint) (bool, error)
	Create(category *models.RuleCategory) error
	UpdateNameAndIcon(categoryID uint, name string, icon string) error
	DeleteCascade(categoryID uint, roomID uint) error
}

type RuleUserRepository interface {
	FindByID(userID uint) (models.User, error)
	ListByRoom(roomID uint) ([]models.User, error)
}

type RuleService struct {
	rules      RuleRepositoryPort
	categories CategoryRepositoryPort
	users      RuleUserRepository
	location   *time.Location
}

func NewRuleService(rules RuleRepositoryPort, categories CategoryRepositoryPort, users RuleUserRepository, location *time.Location) *RuleService {
	return &RuleService{rules: rules, categories: categories, users: users, location: location}
}

// RuleMemberInput is one roster slot of a rule write request. A nil UserID
// keeps the slot unassigned.
type RuleMemberInput struct {
	UserID *uint `json:"userId"`
	Days   []int `json:"days"`
}

type RuleInput struct {
	CategoryID          uint              `json:"categoryId"`
	Name                string            `json:"name"`
	IsKeyRule           bool              `json:"isKeyRule"`
	NotificationEnabled bool              `json:"notification"`
	Members             []RuleMemberInput `json:"ruleMembers"`
}

func (service *RuleService) memberOf(userID uint) (models.User, uint, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, 0, ErrUserNotFound
		}
		return models.User{}, 0, err
	}
	if !user.HasRoom() {
		return models.User{}, 0, ErrNoRoom
	}
	return user, *user.RoomID, nil
}

func (service *RuleService) ListCategories(userID uint) ([]models.RuleCategory, error) {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return nil, err
	}
	return service.categories.ListByRoom(roomID)
}

func (service *RuleService) CreateCategory(userID uint, name string, icon string) (models.RuleCategory, error) {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return models.RuleCategory{}, err
	}

	trimmed, err := validateCategoryName(name)
	if err != nil {
		return models.RuleCategory{}, err
	}
	if !models.IsCategoryIcon(icon) {
		return models.RuleCategory{}, ErrInvalidIcon
	}

	count, err := service.categories.CountByRoom(roomID)
	if err != nil {
		return models.RuleCategory{}, err
	}
	if count >= models.MaxCategoriesPerRoom {
		return models.RuleCategory{}, ErrCategoryLimit
	}

	taken, err := service.categories.ExistsByRoomAndName(roomID, trimmed, 0)
	if err != nil {
		return models.RuleCategory{}, err
	}
	if taken {
		return models.RuleCategory{}, ErrDuplicateCategoryName
	}

	category := models.RuleCategory{RoomID: roomID, Name: trimmed, Icon: icon}
	if err := service.categories.Create(&category); err != nil {
		return models.RuleCategory{}, err
	}
	return category, nil
}

func (service *RuleService) UpdateCategory(userID uint, categoryID uint, name string, icon string) error {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return err
	}

	category, err := service.loadRoomCategory(categoryID, roomID)
	if err != nil {
		return err
	}

	trimmed, err := validateCategoryName(name)
	if err != nil {
		return err
	}
	if !models.IsCategoryIcon(icon) {
		return ErrInvalidIcon
	}

	taken, err := service.categories.ExistsByRoomAndName(roomID, trimmed, category.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateCategoryName
	}
	return service.categories.UpdateNameAndIcon(category.ID, trimmed, icon)
}

func (service *RuleService) DeleteCategory(userID uint, categoryID uint) error {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return err
	}
	category, err := service.loadRoomCategory(categoryID, roomID)
	if err != nil {
		return err
	}
	return service.categories.DeleteCascade(category.ID, roomID)
}

func (service *RuleService) CreateRule(userID uint, input RuleInput) (models.Rule, error) {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return models.Rule{}, err
	}

	category, err := service.loadRoomCategory(input.CategoryID, roomID)
	if err != nil {
		return models.Rule{}, err
	}

	members, err := service.validateRuleInput(roomID, input)
	if err != nil {
		return models.Rule{}, err
	}

	count, err := service.rules.CountByCategory(category.ID)
	if err != nil {
		return models.Rule{}, err
	}
	if count >= models.MaxRulesPerCategory {
		return models.Rule{}, ErrRuleLimit
	}

	if input.NotificationEnabled {
		notifying, err := service.rules.CountNotificationEnabled(roomID)
		if err != nil {
			return models.Rule{}, err
		}
		if notifying >= models.MaxNotificationRules {
			return models.Rule{}, ErrNotificationRuleLimit
		}
	}

	rule := models.Rule{
		RoomID:              roomID,
		CategoryID:          category.ID,
		Name:                strings.TrimSpace(input.Name),
		IsKeyRule:           input.IsKeyRule,
		NotificationEnabled: input.NotificationEnabled,
		Members:             members,
	}
	if err := service.rules.Create(&rule); err != nil {
		return models.Rule{}, err
	}
	return rule, nil
}

// UpdateRule rewrites a rule. The roster change also drops any temporary
// override for today since the assignment it replaced no longer exists.
func (service *RuleService) UpdateRule(userID uint, ruleID uint, input RuleInput) error {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return err
	}

	rule, err := service.loadRoomRule(ruleID, roomID)
	if err != nil {
		return err
	}

	category, err := service.loadRoomCategory(input.CategoryID, roomID)
	if err != nil {
		return err
	}

	members, err := service.validateRuleInput(roomID, input)
	if err != nil {
		return err
	}
	if input.IsKeyRule != rule.IsKeyRule {
		return ErrKeyRuleFlagLocked
	}

	if category.ID != rule.CategoryID {
		count, err := service.rules.CountByCategory(category.ID)
		if err != nil {
			return err
		}
		if count >= models.MaxRulesPerCategory {
			return ErrRuleLimit
		}
	}

	if input.NotificationEnabled && !rule.NotificationEnabled {
		notifying, err := service.rules.CountNotificationEnabled(roomID)
		if err != nil {
			return err
		}
		if notifying >= models.MaxNotificationRules {
			return ErrNotificationRuleLimit
		}
	}

	previousCategoryID := rule.CategoryID
	rule.Name = strings.TrimSpace(input.Name)
	rule.CategoryID = category.ID
	rule.NotificationEnabled = input.NotificationEnabled
	return service.rules.Update(&rule, previousCategoryID, members)
}

func (service *RuleService) DeleteRule(userID uint, ruleID uint) error {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return err
	}
	rule, err := service.loadRoomRule(ruleID, roomID)
	if err != nil {
		return err
	}
	return service.rules.DeleteCascade(rule.ID, rule.CategoryID)
}

// SetTemporaryMembers replaces today's responsible members wholesale. An
// empty list explicitly clears today's assignment.
func (service *RuleService) SetTemporaryMembers(userID uint, ruleID uint, memberIDs []uint) error {
	_, roomID, err := service.memberOf(userID)
	if err != nil {
		return err
	}
	rule, err := service.loadRoomRule(ruleID, roomID)
	if err != nil {
		return err
	}
	if rule.IsKeyRule {
		return ErrKeyRuleHasMembers
	}

	if err := service.requireRoomMembers(roomID, memberIDs); err != nil {
		return err
	}
	return service.rules.SetTemporaryMembers(rule.ID, dedupeUserIDs(memberIDs), time.Now())
}

func (service *RuleService) loadRoomCategory(categoryID uint, roomID uint) (models.RuleCategory, error) {
	category, err := service.categories.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RuleCategory{}, ErrCategoryNotFound
		}
		return models.RuleCategory{}, err
	}
	if category.RoomID != roomID {
		return models.RuleCategory{}, ErrForbiddenRoom
	}
	return category, nil
}

func (service *RuleService) loadRoomRule(ruleID uint, roomID uint) (models.Rule, error) {
	rule, err := service.rules.FindByID(ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rule{}, ErrRuleNotFound
		}
		return models.Rule{}, err
	}
	if rule.RoomID != roomID {
		return models.Rule{}, ErrForbiddenRoom
	}
	return rule, nil
}

// validateRuleInput enforces the rule invariants: a key rule has no members
// and no notification; any other rule has at least one member, each with at
// least one weekday in 0..6; every assigned member belongs to the room.
func (service *RuleService) validateRuleInput(roomID uint, input RuleInput) ([]models.RuleMember, error) {
	trimmed := strings.TrimSpace(input.Name)
	if trimmed == "" {
		return nil, ErrNameRequired
	}
	if len([]rune(trimmed)) > models.MaxRuleNameLength {
		return nil, ErrNameTooLong
	}

	if input.IsKeyRule {
		if len(input.Members) > 0 || input.NotificationEnabled {
			return nil, ErrKeyRuleHasMembers
		}
		return nil, nil
	}

	if len(input.Members) == 0 {
		return nil, ErrRuleNeedsMember
	}

	assigned := make([]uint, 0, len(input.Members))
	members := make([]models.RuleMember, 0, len(input.Members))
	for _, member := range input.Members {
		if len(member.Days) == 0 {
			return nil, ErrMemberNeedsDay
		}
		for _, day := range member.Days {
			if day < 0 || day > 6 {
				return nil, ErrInvalidWeekday
			}
		}
		if member.UserID != nil {
			assigned = append(assigned, *member.UserID)
		}
		members = append(members, models.RuleMember{UserID: member.UserID, Days: member.Days})
	}

	if err := service.requireRoomMembers(roomID, assigned); err != nil {
		return nil, err
	}
	return members, nil
}

func (service *RuleService) requireRoomMembers(roomID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return err
	}
	known := make(map[uint]struct{}, len(members))
	for _, member := range members {
		known[member.ID] = struct{}{}
	}
	for _, id := range userIDs {
		if _, exists := known[id]; !exists {
			return ErrForbiddenRoom
		}
	}
	return nil
}

func validateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if len([]rune(trimmed)) > models.MaxCategoryNameLength {
		return "", ErrNameTooLong
	}
	return trimmed, nil
}
