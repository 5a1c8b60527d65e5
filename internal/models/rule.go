package models

import "time"

const (
	MaxCategoryNameLength = 15
	MaxRuleNameLength     = 30
	MaxCategoriesPerRoom  = 8
	MaxRulesPerCategory   = 20
	MaxNotificationRules  = 30

	// Default view limits; overridable through env.
	HomeKeyRuleLimit   = 3
	CategoryColorLimit = 3
)

// CategoryIcons is the fixed set of icons a rule category can carry.
var CategoryIcons = []string{
	"CLEAN",
	"TRASH",
	"DISH",
	"LAUNDRY",
	"SHOPPING",
	"PET",
	"PLANT",
	"ETC",
}

func IsCategoryIcon(icon string) bool {
	for _, known := range CategoryIcons {
		if known == icon {
			return true
		}
	}
	return false
}

type RuleCategory struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Icon      string `gorm:"not null"`
	RuleCount int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rule is a recurring chore. A non-key rule carries a fixed weekly roster of
// RuleMember rows; TmpMemberIDs with TmpUpdatedAt form a same-day override
// that replaces the roster for the day it was set, even when empty.
type Rule struct {
	ID                  uint   `gorm:"primaryKey"`
	RoomID              uint   `gorm:"not null;index"`
	CategoryID          uint   `gorm:"not null;index"`
	Name                string `gorm:"not null"`
	IsKeyRule           bool   `gorm:"not null;default:false"`
	NotificationEnabled bool   `gorm:"not null;default:false"`
	Members             []RuleMember
	TmpMemberIDs        []uint `gorm:"serializer:json"`
	TmpUpdatedAt        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RuleMember is one slot of a rule's fixed weekly roster. A nil UserID means
// the slot is assigned to no one. Days holds weekday numbers 0 (Sunday)
// through 6 (Saturday).
type RuleMember struct {
	ID     uint  `gorm:"primaryKey"`
	RuleID uint  `gorm:"not null;index"`
	UserID *uint `gorm:"index"`
	Days   []int `gorm:"serializer:json"`
}
