package models

import "time"

const (
	RoomCodeLength   = 8
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	MaxRoomNameLength = 8
	MaxRoomMembers    = 16
)

type Room struct {
	ID            uint   `gorm:"primaryKey"`
	OwnerID       uint   `gorm:"not null"`
	Name          string `gorm:"not null"`
	Code          string `gorm:"uniqueIndex;not null"`
	UserCount     int    `gorm:"not null;default:1"`
	EventCount    int    `gorm:"not null;default:0"`
	CategoryCount int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
