package models

import "time"

const (
	MaxEventNameLength = 15

	GuideEventName       = "Welcome to Hous!"
	GuideEventIcon       = "PARTY"
	GuideEventDaysOffset = 10
)

// EventIcons is the fixed set of icons an event can carry.
var EventIcons = []string{
	"PARTY",
	"BIRTHDAY",
	"DRINK",
	"MOVIE",
	"TRIP",
	"MEETING",
	"BILLS",
	"ETC",
}

func IsEventIcon(icon string) bool {
	for _, known := range EventIcons {
		if known == icon {
			return true
		}
	}
	return false
}

type Event struct {
	ID             uint   `gorm:"primaryKey"`
	RoomID         uint   `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Icon           string `gorm:"not null"`
	Date           time.Time `gorm:"type:date;not null"`
	ParticipantIDs []uint    `gorm:"serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
