package models

import "time"

const (
	TypeScoreDimensions = 5

	MaxUserNameLength = 15
	MaxUserTags       = 5
)

type User struct {
	ID                  uint   `gorm:"primaryKey"`
	Email               string `gorm:"uniqueIndex;not null"`
	PasswordHash        string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Job                 string
	Bio                 string
	Tags                []string `gorm:"serializer:json"`
	RoomID              *uint    `gorm:"index"`
	RoomJoinedAt        *time.Time
	TypeID              *uint
	TypeScore           []int `gorm:"serializer:json"`
	TypeUpdatedAt       *time.Time
	NotificationEnabled bool `gorm:"not null;default:true"`
	FCMToken            string `gorm:"column:fcm_token"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasRoom reports whether the user currently belongs to a room.
func (user User) HasRoom() bool {
	return user.RoomID != nil && *user.RoomID != 0
}
