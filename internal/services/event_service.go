package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type EventRepositoryPort interface {
	FindByID(eventID uint) (models.Event, error)
	ListByRoom(roomID uint) ([]models.Event, error)
	Create(event *models.Event) error
	Save(event *models.Event) error
	Delete(eventID uint, roomID uint) error
}

type EventService struct {
	events   EventRepositoryPort
	users    RoomUserRepository
	types    RoomTypeRepository
	location *time.Location
}

func NewEventService(events EventRepositoryPort, users RoomUserRepository, types RoomTypeRepository, location *time.Location) *EventService {
	return &EventService{events: events, users: users, types: types, location: location}
}

type EventInput struct {
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Date           string `json:"date"`
	ParticipantIDs []uint `json:"participants"`
}

// EventDetail is the event screen projection with fully resolved
// participants.
type EventDetail struct {
	EventID      uint            `json:"eventId"`
	Name         string          `json:"name"`
	Icon         string          `json:"icon"`
	Date         string          `json:"date"`
	Participants []MemberProfile `json:"participants"`
}

func (service *EventService) List(roomID uint) ([]models.Event, error) {
	return service.events.ListByRoom(roomID)
}

func (service *EventService) Create(roomID uint, input EventInput) (models.Event, error) {
	name, icon, date, err := service.validateInput(input)
	if err != nil {
		return models.Event{}, err
	}

	participants := dedupeUserIDs(input.ParticipantIDs)
	if len(participants) == 0 {
		return models.Event{}, ErrNotParticipant
	}
	if err := service.requireRoomMembers(roomID, participants); err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		RoomID:         roomID,
		Name:           name,
		Icon:           icon,
		Date:           date,
		ParticipantIDs: participants,
	}
	if err := service.events.Create(&event); err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (service *EventService) Update(roomID uint, eventID uint, input EventInput) error {
	event, err := service.loadRoomEvent(eventID, roomID)
	if err != nil {
		return err
	}

	name, icon, date, err := service.validateInput(input)
	if err != nil {
		return err
	}

	participants := dedupeUserIDs(input.ParticipantIDs)
	if len(participants) == 0 {
		return ErrNotParticipant
	}
	if err := service.requireRoomMembers(roomID, participants); err != nil {
		return err
	}

	event.Name = name
	event.Icon = icon
	event.Date = date
	event.ParticipantIDs = participants
	return service.events.Save(&event)
}

func (service *EventService) Detail(roomID uint, eventID uint) (EventDetail, error) {
	event, err := service.loadRoomEvent(eventID, roomID)
	if err != nil {
		return EventDetail{}, err
	}

	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return EventDetail{}, err
	}
	colors, err := TypeColorIndex(service.types)
	if err != nil {
		return EventDetail{}, err
	}
	memberIndex := make(map[uint]models.User, len(members))
	for _, member := range members {
		memberIndex[member.ID] = member
	}

	detail := EventDetail{
		EventID:      event.ID,
		Name:         event.Name,
		Icon:         event.Icon,
		Date:         NewDay(event.Date, service.location).String(),
		Participants: make([]MemberProfile, 0, len(event.ParticipantIDs)),
	}
	for _, participantID := range event.ParticipantIDs {
		member, known := memberIndex[participantID]
		if !known {
			continue
		}
		profile := MemberProfile{UserID: member.ID, Name: member.Name, Job: member.Job}
		if member.TypeID != nil {
			if entry, present := colors[*member.TypeID]; present {
				profile.TypeName = entry.Name
				profile.TypeColor = entry.Color
			}
		}
		detail.Participants = append(detail.Participants, profile)
	}
	return detail, nil
}

func (service *EventService) Join(userID uint, roomID uint, eventID uint) error {
	event, err := service.loadRoomEvent(eventID, roomID)
	if err != nil {
		return err
	}
	for _, participantID := range event.ParticipantIDs {
		if participantID == userID {
			return ErrAlreadyParticipant
		}
	}
	event.ParticipantIDs = append(event.ParticipantIDs, userID)
	return service.events.Save(&event)
}

// Leave removes the user from the event. The last participant leaving
// deletes the event.
func (service *EventService) Leave(userID uint, roomID uint, eventID uint) error {
	event, err := service.loadRoomEvent(eventID, roomID)
	if err != nil {
		return err
	}

	remaining := removeParticipant(event.ParticipantIDs, userID)
	if len(remaining) == len(event.ParticipantIDs) {
		return ErrNotParticipant
	}
	if len(remaining) == 0 {
		return service.events.Delete(event.ID, roomID)
	}
	event.ParticipantIDs = remaining
	return service.events.Save(&event)
}

func (service *EventService) Delete(roomID uint, eventID uint) error {
	event, err := service.loadRoomEvent(eventID, roomID)
	if err != nil {
		return err
	}
	return service.events.Delete(event.ID, roomID)
}

func (service *EventService) loadRoomEvent(eventID uint, roomID uint) (models.Event, error) {
	event, err := service.events.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	if event.RoomID != roomID {
		return models.Event{}, ErrForbiddenRoom
	}
	return event, nil
}

func (service *EventService) validateInput(input EventInput) (string, string, time.Time, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", time.Time{}, ErrNameRequired
	}
	if len([]rune(name)) > models.MaxEventNameLength {
		return "", "", time.Time{}, ErrNameTooLong
	}
	if !models.IsEventIcon(input.Icon) {
		return "", "", time.Time{}, ErrInvalidIcon
	}

	day, err := ParseDay(strings.TrimSpace(input.Date))
	if err != nil {
		return "", "", time.Time{}, ErrInvalidDate
	}
	return name, input.Icon, day.Start(service.location), nil
}

func (service *EventService) requireRoomMembers(roomID uint, userIDs []uint) error {
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

func removeParticipant(ids []uint, userID uint) []uint {
	filtered := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
