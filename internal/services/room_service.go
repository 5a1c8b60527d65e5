package services

import (
	"errors"
	"strings"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"github.com/hous-app/hous-server/internal/security"
	"gorm.io/gorm"
)

// Starter content every new room is seeded with.
const (
	seedCategoryName = "Cleaning"
	seedCategoryIcon = "CLEAN"
	seedKeyRuleName  = "Knock before entering a room"
	seedRuleName     = "Tidy the common space"
)

type RoomRepositoryPort interface {
	FindByID(roomID uint) (models.Room, error)
	FindByCode(code string) (models.Room, error)
	CodeExists(code string) (bool, error)
	UpdateName(roomID uint, name string) error
	CreateWithSeed(room *models.Room, category *models.RuleCategory, event *models.Event, seedRules []*models.Rule, joinedAt time.Time) error
	AddMember(roomID uint, userID uint, joinedAt time.Time) error
	RemoveMember(roomID uint, userID uint, newOwnerID *uint) error
	DeleteCascade(roomID uint) error
}

type RoomUserRepository interface {
	FindByID(userID uint) (models.User, error)
	ListByRoom(roomID uint) ([]models.User, error)
}

type RoomTypeRepository interface {
	ListTypes() ([]models.PersonalityType, error)
}

type RoomService struct {
	rooms    RoomRepositoryPort
	users    RoomUserRepository
	types    RoomTypeRepository
	location *time.Location
}

func NewRoomService(rooms RoomRepositoryPort, users RoomUserRepository, types RoomTypeRepository, location *time.Location) *RoomService {
	return &RoomService{rooms: rooms, users: users, types: types, location: location}
}

// MemberProfile is a room member joined with their personality type.
type MemberProfile struct {
	UserID    uint   `json:"userId"`
	Name      string `json:"name"`
	Job       string `json:"job"`
	TypeName  string `json:"typeName"`
	TypeColor string `json:"typeColor"`
}

// RoomInfo is the room detail view: the room row plus member profiles in
// join order.
type RoomInfo struct {
	RoomID  uint            `json:"roomId"`
	Name    string          `json:"name"`
	Code    string          `json:"code"`
	OwnerID uint            `json:"ownerId"`
	Members []MemberProfile `json:"members"`
}

// Create makes a room for a roomless user and seeds its starter content: one
// rule category, one guide event ten days out, one key rule and one everyday
// rule assigned to no one.
func (service *RoomService) Create(ownerID uint, name string) (models.Room, error) {
	user, err := service.users.FindByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrUserNotFound
		}
		return models.Room{}, err
	}
	if user.HasRoom() {
		return models.Room{}, ErrAlreadyInRoom
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.Room{}, ErrNameRequired
	}
	if len([]rune(trimmed)) > models.MaxRoomNameLength {
		return models.Room{}, ErrNameTooLong
	}

	code, err := service.generateUniqueCode()
	if err != nil {
		return models.Room{}, err
	}

	now := time.Now()
	today := NewDay(now, service.location)
	guideDate := today.AddDays(models.GuideEventDaysOffset).Start(service.location)

	room := models.Room{
		OwnerID:   ownerID,
		Name:      trimmed,
		Code:      code,
		UserCount: 1,
	}
	category := models.RuleCategory{
		Name: seedCategoryName,
		Icon: seedCategoryIcon,
	}
	event := models.Event{
		Name:           models.GuideEventName,
		Icon:           models.GuideEventIcon,
		Date:           guideDate,
		ParticipantIDs: []uint{ownerID},
	}
	keyRule := models.Rule{
		Name:      seedKeyRuleName,
		IsKeyRule: true,
	}
	everydayRule := models.Rule{
		Name: seedRuleName,
		Members: []models.RuleMember{
			{UserID: nil, Days: []int{0, 1, 2, 3, 4, 5, 6}},
		},
	}

	if err := service.rooms.CreateWithSeed(&room, &category, &event, []*models.Rule{&keyRule, &everydayRule}, now); err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// Join binds a roomless user to the room matching the invite code.
func (service *RoomService) Join(userID uint, code string) (models.Room, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrUserNotFound
		}
		return models.Room{}, err
	}
	if user.HasRoom() {
		return models.Room{}, ErrAlreadyInRoom
	}

	room, err := service.rooms.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, err
	}
	if room.UserCount >= models.MaxRoomMembers {
		return models.Room{}, ErrRoomFull
	}

	if err := service.rooms.AddMember(room.ID, userID, time.Now()); err != nil {
		return models.Room{}, err
	}
	room.UserCount++
	return room, nil
}

// Leave detaches the user from their room. The last member leaving deletes
// the room and everything it owns; otherwise ownership passes to the
// earliest-joined remaining member when the owner departs.
func (service *RoomService) Leave(userID uint) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.HasRoom() {
		return ErrNoRoom
	}
	roomID := *user.RoomID

	room, err := service.rooms.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return err
	}
	if len(members) <= 1 {
		return service.rooms.DeleteCascade(roomID)
	}

	var newOwnerID *uint
	if room.OwnerID == userID {
		for _, member := range members {
			if member.ID != userID {
				successor := member.ID
				newOwnerID = &successor
				break
			}
		}
	}
	return service.rooms.RemoveMember(roomID, userID, newOwnerID)
}

// Info assembles the room detail view with fully resolved member types.
func (service *RoomService) Info(userID uint) (RoomInfo, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomInfo{}, ErrUserNotFound
		}
		return RoomInfo{}, err
	}
	if !user.HasRoom() {
		return RoomInfo{}, ErrNoRoom
	}

	room, err := service.rooms.FindByID(*user.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoomInfo{}, ErrRoomNotFound
		}
		return RoomInfo{}, err
	}

	members, err := service.users.ListByRoom(room.ID)
	if err != nil {
		return RoomInfo{}, err
	}
	colors, err := TypeColorIndex(service.types)
	if err != nil {
		return RoomInfo{}, err
	}

	profiles := make([]MemberProfile, 0, len(members))
	for _, member := range members {
		profile := MemberProfile{
			UserID: member.ID,
			Name:   member.Name,
			Job:    member.Job,
		}
		if member.TypeID != nil {
			if entry, known := colors[*member.TypeID]; known {
				profile.TypeName = entry.Name
				profile.TypeColor = entry.Color
			}
		}
		profiles = append(profiles, profile)
	}

	return RoomInfo{
		RoomID:  room.ID,
		Name:    room.Name,
		Code:    room.Code,
		OwnerID: room.OwnerID,
		Members: profiles,
	}, nil
}

func (service *RoomService) Rename(userID uint, name string) error {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !user.HasRoom() {
		return ErrNoRoom
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if len([]rune(trimmed)) > models.MaxRoomNameLength {
		return ErrNameTooLong
	}
	return service.rooms.UpdateName(*user.RoomID, trimmed)
}

func (service *RoomService) generateUniqueCode() (string, error) {
	for {
		code, err := security.JoinCode(models.RoomCodeLength, models.RoomCodeAlphabet)
		if err != nil {
			return "", err
		}
		taken, err := service.rooms.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}

// TypeColorIndex loads the personality catalog keyed by type id for
// read-side joins.
func TypeColorIndex(types RoomTypeRepository) (map[uint]models.PersonalityType, error) {
	catalog, err := types.ListTypes()
	if err != nil {
		return nil, err
	}
	index := make(map[uint]models.PersonalityType, len(catalog))
	for _, entry := range catalog {
		index[entry.ID] = entry
	}
	return index, nil
}
