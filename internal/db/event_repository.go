package db

import (
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	database *gorm.DB
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{database: database}
}

func (repo *EventRepository) FindByID(eventID uint) (models.Event, error) {
	var event models.Event
	if err := repo.database.First(&event, eventID).Error; err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (repo *EventRepository) ListByRoom(roomID uint) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.
		Where("room_id = ?", roomID).
		Order("date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListUpcoming returns the room's events on or after the given day start,
// nearest first.
func (repo *EventRepository) ListUpcoming(roomID uint, dayStart time.Time) ([]models.Event, error) {
	events := make([]models.Event, 0)
	if err := repo.database.
		Where("room_id = ? AND date >= ?", roomID, dayStart).
		Order("date ASC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Create inserts the event and bumps the room's event counter in the same
// transaction.
func (repo *EventRepository) Create(event *models.Event) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", event.RoomID).
			Update("event_count", gorm.Expr("event_count + 1")).Error
	})
}

func (repo *EventRepository) Save(event *models.Event) error {
	return repo.database.Save(event).Error
}

// Delete removes the event and decrements the room's event counter.
func (repo *EventRepository) Delete(eventID uint, roomID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Event{}, eventID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", roomID).
			Update("event_count", gorm.Expr("event_count - 1")).Error
	})
}
