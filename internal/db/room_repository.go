package db

import (
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type RoomRepository struct {
	database *gorm.DB
}

func NewRoomRepository(database *gorm.DB) *RoomRepository {
	return &RoomRepository{database: database}
}

func (repo *RoomRepository) FindByID(roomID uint) (models.Room, error) {
	var room models.Room
	if err := repo.database.First(&room, roomID).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (repo *RoomRepository) FindByCode(code string) (models.Room, error) {
	var room models.Room
	if err := repo.database.Where("code = ?", code).First(&room).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (repo *RoomRepository) CodeExists(code string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Room{}).Where("code = ?", code).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *RoomRepository) UpdateName(roomID uint, name string) error {
	return repo.database.Model(&models.Room{}).Where("id = ?", roomID).Update("name", name).Error
}

// CreateWithSeed creates a room together with its starter content and binds
// the owner to it, all in one transaction. The seed rules must reference the
// seed category through their CategoryID zero value; it is filled in here
// once the category row exists.
func (repo *RoomRepository) CreateWithSeed(
	room *models.Room,
	category *models.RuleCategory,
	event *models.Event,
	seedRules []*models.Rule,
	joinedAt time.Time,
) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		category.RoomID = room.ID
		if err := tx.Create(category).Error; err != nil {
			return err
		}

		event.RoomID = room.ID
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		for _, rule := range seedRules {
			rule.RoomID = room.ID
			rule.CategoryID = category.ID
			if err := tx.Create(rule).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.RuleCategory{}).
			Where("id = ?", category.ID).
			Update("rule_count", len(seedRules)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).
			Where("id = ?", room.ID).
			Updates(map[string]any{
				"category_count": 1,
				"event_count":    1,
				"user_count":     1,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", room.OwnerID).
			Updates(map[string]any{
				"room_id":        room.ID,
				"room_joined_at": joinedAt,
			}).Error
	})
}

// AddMember binds a user to the room and bumps its member counter.
func (repo *RoomRepository) AddMember(roomID uint, userID uint, joinedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"room_id":        roomID,
				"room_joined_at": joinedAt,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", roomID).
			Update("user_count", gorm.Expr("user_count + 1")).Error
	})
}

// RemoveMember detaches a non-last member from the room: strips them from
// every rule roster, temporary override and event, deletes their checks for
// the room's rules, and hands ownership to newOwnerID when set.
func (repo *RoomRepository) RemoveMember(roomID uint, userID uint, newOwnerID *uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		ruleIDs, err := roomRuleIDs(tx, roomID)
		if err != nil {
			return err
		}

		if len(ruleIDs) > 0 {
			if err := tx.Where("rule_id IN ? AND user_id = ?", ruleIDs, userID).
				Delete(&models.RuleMember{}).Error; err != nil {
				return err
			}
			if err := tx.Where("rule_id IN ? AND user_id = ?", ruleIDs, userID).
				Delete(&models.Check{}).Error; err != nil {
				return err
			}
			if err := stripUserFromTmpMembers(tx, ruleIDs, userID); err != nil {
				return err
			}
		}

		if err := stripUserFromRoomEvents(tx, roomID, userID); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"room_id":        nil,
				"room_joined_at": nil,
			}).Error; err != nil {
			return err
		}

		updates := map[string]any{"user_count": gorm.Expr("user_count - 1")}
		if newOwnerID != nil {
			updates["owner_id"] = *newOwnerID
		}
		return tx.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates).Error
	})
}

// DeleteCascade removes the room together with everything it owns: rules and
// their members and checks, categories and events. Remaining member back
// references are cleared.
func (repo *RoomRepository) DeleteCascade(roomID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		ruleIDs, err := roomRuleIDs(tx, roomID)
		if err != nil {
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

		if err := tx.Where("room_id = ?", roomID).Delete(&models.RuleCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", roomID).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("room_id = ?", roomID).
			Updates(map[string]any{
				"room_id":        nil,
				"room_joined_at": nil,
			}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Room{}, roomID).Error
	})
}

func roomRuleIDs(tx *gorm.DB, roomID uint) ([]uint, error) {
	ruleIDs := make([]uint, 0)
	if err := tx.Model(&models.Rule{}).
		Where("room_id = ?", roomID).
		Pluck("id", &ruleIDs).Error; err != nil {
		return nil, err
	}
	return ruleIDs, nil
}

func stripUserFromTmpMembers(tx *gorm.DB, ruleIDs []uint, userID uint) error {
	rules := make([]models.Rule, 0)
	if err := tx.Where("id IN ?", ruleIDs).Find(&rules).Error; err != nil {
		return err
	}
	for index := range rules {
		filtered := removeUserID(rules[index].TmpMemberIDs, userID)
		if len(filtered) == len(rules[index].TmpMemberIDs) {
			continue
		}
		rules[index].TmpMemberIDs = filtered
		if err := tx.Save(&rules[index]).Error; err != nil {
			return err
		}
	}
	return nil
}

// stripUserFromRoomEvents removes the user from every event of the room,
// deleting events that end up with no participants and keeping the room's
// event counter in step.
func stripUserFromRoomEvents(tx *gorm.DB, roomID uint, userID uint) error {
	events := make([]models.Event, 0)
	if err := tx.Where("room_id = ?", roomID).Find(&events).Error; err != nil {
		return err
	}

	deleted := 0
	for index := range events {
		filtered := removeUserID(events[index].ParticipantIDs, userID)
		if len(filtered) == len(events[index].ParticipantIDs) {
			continue
		}
		if len(filtered) == 0 {
			if err := tx.Delete(&models.Event{}, events[index].ID).Error; err != nil {
				return err
			}
			deleted++
			continue
		}
		events[index].ParticipantIDs = filtered
		if err := tx.Save(&events[index]).Error; err != nil {
			return err
		}
	}

	if deleted > 0 {
		if err := tx.Model(&models.Room{}).
			Where("id = ?", roomID).
			Update("event_count", gorm.Expr("event_count - ?", deleted)).Error; err != nil {
			return err
		}
	}
	return nil
}

func removeUserID(ids []uint, userID uint) []uint {
	filtered := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
