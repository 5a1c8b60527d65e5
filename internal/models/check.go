package models

import "time"

// Check marks one user's completion of one rule on one calendar day. The
// schema does not enforce uniqueness per (user, rule, day); writers collapse
// duplicates when toggling.
type Check struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_check_user_rule"`
	RuleID    uint      `gorm:"not null;index:idx_check_user_rule"`
	Date      time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
}
