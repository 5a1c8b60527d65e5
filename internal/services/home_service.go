package services

import (
	"errors"
	"sort"
	"time"

	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type HomeRuleRepository interface {
	FindByID(ruleID uint) (models.Rule, error)
	ListByRoom(roomID uint) ([]models.Rule, error)
	ListByCategory(categoryID uint) ([]models.Rule, error)
	ListKeyRules(roomID uint, limit int) ([]models.Rule, error)
}

type HomeCheckRepository interface {
	ListUserChecksForDay(userID uint, dayStart time.Time, dayEnd time.Time) ([]uint, error)
	ListRoomChecksForDay(ruleIDs []uint, dayStart time.Time, dayEnd time.Time) ([]models.Check, error)
}

type HomeEventRepository interface {
	ListUpcoming(roomID uint, dayStart time.Time) ([]models.Event, error)
}

type HomeCategoryRepository interface {
	FindByID(categoryID uint) (models.RuleCategory, error)
	ListByRoom(roomID uint) ([]models.RuleCategory, error)
}

// HomeService assembles the home, room-home and category screens from
// resolver output. Every referenced entity is fetched up front; views are
// built from fully resolved values only.
type HomeService struct {
	rules      HomeRuleRepository
	categories HomeCategoryRepository
	checks     HomeCheckRepository
	events     HomeEventRepository
	users      RoomUserRepository
	types      RoomTypeRepository
	location   *time.Location

	keyRuleLimit int
	colorLimit   int
}

func NewHomeService(
	rules HomeRuleRepository,
	categories HomeCategoryRepository,
	checks HomeCheckRepository,
	events HomeEventRepository,
	users RoomUserRepository,
	types RoomTypeRepository,
	location *time.Location,
	keyRuleLimit int,
	colorLimit int,
) *HomeService {
	return &HomeService{
		rules:        rules,
		categories:   categories,
		checks:       checks,
		events:       events,
		users:        users,
		types:        types,
		location:     location,
		keyRuleLimit: keyRuleLimit,
		colorLimit:   colorLimit,
	}
}

type ToDoItem struct {
	RuleID       uint   `json:"ruleId"`
	RuleName     string `json:"ruleName"`
	CategoryIcon string `json:"categoryIcon"`
	IsChecked    bool   `json:"isChecked"`
}

type KeyRuleItem struct {
	RuleID   uint   `json:"ruleId"`
	RuleName string `json:"ruleName"`
}

type UpcomingEvent struct {
	EventID          uint   `json:"eventId"`
	Name             string `json:"name"`
	Icon             string `json:"icon"`
	Date             string `json:"date"`
	DDay             int    `json:"dDay"`
	ParticipantCount int    `json:"participantCount"`
}

// HomeView is the home-screen projection: pinned key rules, the caller's
// to-do list for today and upcoming events.
type HomeView struct {
	RoomName string          `json:"roomName"`
	KeyRules []KeyRuleItem   `json:"keyRules"`
	ToDos    []ToDoItem      `json:"toDos"`
	Events   []UpcomingEvent `json:"events"`
}

type TodayMember struct {
	UserID    uint   `json:"userId"`
	Name      string `json:"name"`
	TypeColor string `json:"typeColor"`
	IsChecked bool   `json:"isChecked"`
}

type TodayRule struct {
	RuleID       uint          `json:"ruleId"`
	RuleName     string        `json:"ruleName"`
	CategoryIcon string        `json:"categoryIcon"`
	Members      []TodayMember `json:"members"`
	IsAllChecked bool          `json:"isAllChecked"`
	IsTmpMember  bool          `json:"isTmpMember"`
}

type CategoryRuleItem struct {
	RuleID    uint     `json:"ruleId"`
	RuleName  string   `json:"ruleName"`
	IsKeyRule bool     `json:"isKeyRule"`
	Colors    []string `json:"typeColors"`
}

// MyToDo lists every non-key rule of the room the user is responsible for
// today, oldest rule first, untruncated.
func (service *HomeService) MyToDo(userID uint, roomID uint, today Day) ([]ToDoItem, error) {
	rules, err := service.rules.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	icons, err := service.categoryIconIndex(roomID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := today.Range(service.location)
	checkedRuleIDs, err := service.checks.ListUserChecksForDay(userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	checked := make(map[uint]struct{}, len(checkedRuleIDs))
	for _, ruleID := range checkedRuleIDs {
		checked[ruleID] = struct{}{}
	}

	items := make([]ToDoItem, 0)
	for _, rule := range rules {
		if rule.IsKeyRule {
			continue
		}
		resolution := ResolveToday(rule, today, service.location)
		if !resolution.Contains(userID) {
			continue
		}
		_, isChecked := checked[rule.ID]
		items = append(items, ToDoItem{
			RuleID:       rule.ID,
			RuleName:     rule.Name,
			CategoryIcon: icons[rule.CategoryID],
			IsChecked:    isChecked,
		})
	}
	return items, nil
}

// Home assembles the home screen for the caller.
func (service *HomeService) Home(user models.User, room models.Room, today Day) (HomeView, error) {
	keyRules, err := service.rules.ListKeyRules(room.ID, service.keyRuleLimit)
	if err != nil {
		return HomeView{}, err
	}
	keyItems := make([]KeyRuleItem, 0, len(keyRules))
	for _, rule := range keyRules {
		keyItems = append(keyItems, KeyRuleItem{RuleID: rule.ID, RuleName: rule.Name})
	}

	toDos, err := service.MyToDo(user.ID, room.ID, today)
	if err != nil {
		return HomeView{}, err
	}

	events, err := service.UpcomingEvents(room.ID, today)
	if err != nil {
		return HomeView{}, err
	}

	return HomeView{
		RoomName: room.Name,
		KeyRules: keyItems,
		ToDos:    toDos,
		Events:   events,
	}, nil
}

// RoomToday builds the room-home "today" list. Rules nobody is responsible
// for today come first as key-like placeholders, then rules with assignees,
// each bucket in creation order.
func (service *HomeService) RoomToday(roomID uint, today Day) ([]TodayRule, error) {
	rules, err := service.rules.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	icons, err := service.categoryIconIndex(roomID)
	if err != nil {
		return nil, err
	}
	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	colors, err := TypeColorIndex(service.types)
	if err != nil {
		return nil, err
	}

	memberIndex := make(map[uint]models.User, len(members))
	for _, member := range members {
		memberIndex[member.ID] = member
	}

	ruleIDs := make([]uint, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsKeyRule {
			ruleIDs = append(ruleIDs, rule.ID)
		}
	}
	dayStart, dayEnd := today.Range(service.location)
	checks, err := service.checks.ListRoomChecksForDay(ruleIDs, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	checkedPairs := make(map[[2]uint]struct{}, len(checks))
	for _, check := range checks {
		checkedPairs[[2]uint{check.UserID, check.RuleID}] = struct{}{}
	}

	unassigned := make([]TodayRule, 0)
	assigned := make([]TodayRule, 0)
	for _, rule := range rules {
		if rule.IsKeyRule {
			continue
		}

		resolution := ResolveToday(rule, today, service.location)
		entry := TodayRule{
			RuleID:       rule.ID,
			RuleName:     rule.Name,
			CategoryIcon: icons[rule.CategoryID],
			Members:      make([]TodayMember, 0, len(resolution.UserIDs)),
			IsTmpMember:  OverrideDiffersFromRoster(rule, resolution, today),
		}

		allChecked := len(resolution.UserIDs) > 0
		for _, responsibleID := range resolution.UserIDs {
			member, known := memberIndex[responsibleID]
			if !known {
				continue
			}
			_, isChecked := checkedPairs[[2]uint{responsibleID, rule.ID}]
			if !isChecked {
				allChecked = false
			}
			color := ""
			if member.TypeID != nil {
				if entryType, present := colors[*member.TypeID]; present {
					color = entryType.Color
				}
			}
			entry.Members = append(entry.Members, TodayMember{
				UserID:    member.ID,
				Name:      member.Name,
				TypeColor: color,
				IsChecked: isChecked,
			})
		}
		entry.IsAllChecked = allChecked

		if len(resolution.UserIDs) == 0 {
			unassigned = append(unassigned, entry)
		} else {
			assigned = append(assigned, entry)
		}
	}

	return append(unassigned, assigned...), nil
}

// RosterSlot is one fixed-roster entry of the rule detail view.
type RosterSlot struct {
	UserID    *uint  `json:"userId"`
	Name      string `json:"name"`
	TypeColor string `json:"typeColor"`
	Days      []int  `json:"days"`
}

// RuleDetail is the rule screen projection: the fixed roster plus today's
// resolved state.
type RuleDetail struct {
	RuleID       uint             `json:"ruleId"`
	RuleName     string           `json:"ruleName"`
	CategoryID   uint             `json:"categoryId"`
	IsKeyRule    bool             `json:"isKeyRule"`
	Notification bool             `json:"notification"`
	Roster       []RosterSlot     `json:"ruleMembers"`
	Today        []TodayMember    `json:"todayMembers"`
	TodaySource  ResolutionSource `json:"todaySource"`
}

// Detail assembles the rule screen with fully resolved member names and
// colors.
func (service *HomeService) Detail(roomID uint, ruleID uint, today Day) (RuleDetail, error) {
	rule, err := service.rules.FindByID(ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RuleDetail{}, ErrRuleNotFound
		}
		return RuleDetail{}, err
	}
	if rule.RoomID != roomID {
		return RuleDetail{}, ErrForbiddenRoom
	}

	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return RuleDetail{}, err
	}
	colors, err := TypeColorIndex(service.types)
	if err != nil {
		return RuleDetail{}, err
	}
	memberIndex := make(map[uint]models.User, len(members))
	for _, member := range members {
		memberIndex[member.ID] = member
	}

	detail := RuleDetail{
		RuleID:       rule.ID,
		RuleName:     rule.Name,
		CategoryID:   rule.CategoryID,
		IsKeyRule:    rule.IsKeyRule,
		Notification: rule.NotificationEnabled,
		Roster:       make([]RosterSlot, 0, len(rule.Members)),
		Today:        make([]TodayMember, 0),
	}

	for _, slot := range rule.Members {
		entry := RosterSlot{UserID: slot.UserID, Days: slot.Days}
		if slot.UserID != nil {
			if member, known := memberIndex[*slot.UserID]; known {
				entry.Name = member.Name
				if member.TypeID != nil {
					if entryType, present := colors[*member.TypeID]; present {
						entry.TypeColor = entryType.Color
					}
				}
			}
		}
		detail.Roster = append(detail.Roster, entry)
	}

	if rule.IsKeyRule {
		return detail, nil
	}

	resolution := ResolveToday(rule, today, service.location)
	detail.TodaySource = resolution.Source
	dayStart, dayEnd := today.Range(service.location)
	checks, err := service.checks.ListRoomChecksForDay([]uint{rule.ID}, dayStart, dayEnd)
	if err != nil {
		return RuleDetail{}, err
	}
	checkedUsers := make(map[uint]struct{}, len(checks))
	for _, check := range checks {
		checkedUsers[check.UserID] = struct{}{}
	}

	for _, responsibleID := range resolution.UserIDs {
		member, known := memberIndex[responsibleID]
		if !known {
			continue
		}
		_, isChecked := checkedUsers[responsibleID]
		color := ""
		if member.TypeID != nil {
			if entryType, present := colors[*member.TypeID]; present {
				color = entryType.Color
			}
		}
		detail.Today = append(detail.Today, TodayMember{
			UserID:    member.ID,
			Name:      member.Name,
			TypeColor: color,
			IsChecked: isChecked,
		})
	}
	return detail, nil
}

// UpcomingEvents lists the room's events dated today or later, nearest
// first.
func (service *HomeService) UpcomingEvents(roomID uint, today Day) ([]UpcomingEvent, error) {
	dayStart := today.Start(service.location)
	events, err := service.events.ListUpcoming(roomID, dayStart)
	if err != nil {
		return nil, err
	}

	upcoming := make([]UpcomingEvent, 0, len(events))
	for _, event := range events {
		eventDay := NewDay(event.Date, service.location)
		upcoming = append(upcoming, UpcomingEvent{
			EventID:          event.ID,
			Name:             event.Name,
			Icon:             event.Icon,
			Date:             eventDay.String(),
			DDay:             today.DaysUntil(eventDay),
			ParticipantCount: len(event.ParticipantIDs),
		})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DDay < upcoming[j].DDay
	})
	return upcoming, nil
}

// CategoryRules builds the category screen: every rule in the category, and
// for non-key rules a preview of responsible members' type colors. Colors
// follow quiz completion time ascending; members who never took the quiz
// sort last in room-join order. At most colorLimit distinct colors appear.
func (service *HomeService) CategoryRules(roomID uint, categoryID uint, today Day) ([]CategoryRuleItem, error) {
	category, err := service.categories.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.RoomID != roomID {
		return nil, ErrForbiddenRoom
	}

	rules, err := service.rules.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	members, err := service.users.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	colors, err := TypeColorIndex(service.types)
	if err != nil {
		return nil, err
	}

	memberIndex := make(map[uint]models.User, len(members))
	for _, member := range members {
		memberIndex[member.ID] = member
	}

	items := make([]CategoryRuleItem, 0, len(rules))
	for _, rule := range rules {
		item := CategoryRuleItem{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			IsKeyRule: rule.IsKeyRule,
		}
		if !rule.IsKeyRule {
			resolution := ResolveToday(rule, today, service.location)
			item.Colors = service.previewColors(resolution.UserIDs, memberIndex, colors)
		}
		items = append(items, item)
	}
	return items, nil
}

// previewColors picks the first distinct type colors among the responsible
// members ordered by quiz completion time, null completion last.
func (service *HomeService) previewColors(
	responsibleIDs []uint,
	memberIndex map[uint]models.User,
	colors map[uint]models.PersonalityType,
) []string {
	responsible := make([]models.User, 0, len(responsibleIDs))
	for _, id := range responsibleIDs {
		if member, known := memberIndex[id]; known {
			responsible = append(responsible, member)
		}
	}

	sort.SliceStable(responsible, func(i, j int) bool {
		return quizCompletionLess(responsible[i], responsible[j])
	})

	picked := make([]string, 0, service.colorLimit)
	seen := make(map[string]struct{}, service.colorLimit)
	for _, member := range responsible {
		if member.TypeID == nil {
			continue
		}
		entry, known := colors[*member.TypeID]
		if !known {
			continue
		}
		if _, duplicate := seen[entry.Color]; duplicate {
			continue
		}
		seen[entry.Color] = struct{}{}
		picked = append(picked, entry.Color)
		if len(picked) >= service.colorLimit {
			break
		}
	}
	return picked
}

// quizCompletionLess orders by quiz completion time ascending with unset
// completion sorting last; ties and never-completed members fall back to
// room-join order.
func quizCompletionLess(left models.User, right models.User) bool {
	switch {
	case left.TypeUpdatedAt != nil && right.TypeUpdatedAt != nil:
		if left.TypeUpdatedAt.Equal(*right.TypeUpdatedAt) {
			return joinedBefore(left, right)
		}
		return left.TypeUpdatedAt.Before(*right.TypeUpdatedAt)
	case left.TypeUpdatedAt != nil:
		return true
	case right.TypeUpdatedAt != nil:
		return false
	default:
		return joinedBefore(left, right)
	}
}

func joinedBefore(left models.User, right models.User) bool {
	if left.RoomJoinedAt != nil && right.RoomJoinedAt != nil && !left.RoomJoinedAt.Equal(*right.RoomJoinedAt) {
		return left.RoomJoinedAt.Before(*right.RoomJoinedAt)
	}
	return left.ID < right.ID
}

func (service *HomeService) categoryIconIndex(roomID uint) (map[uint]string, error) {
	categories, err := service.categories.ListByRoom(roomID)
	if err != nil {
		return nil, err
	}
	icons := make(map[uint]string, len(categories))
	for _, category := range categories {
		icons[category.ID] = category.Icon
	}
	return icons, nil
}
