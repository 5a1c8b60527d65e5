package services

import (
	"errors"
	"testing"

	"github.com/hous-app/hous-server/internal/models"
)

func TestRoomCreateSeedsStarterContent(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "seed-owner@example.com", "Owner")

	room, err := service.Create(owner.ID, "  Flat 4B  ")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.Name != "Flat 4B" {
		t.Fatalf("expected trimmed room name, got %q", room.Name)
	}
	if len(room.Code) != models.RoomCodeLength {
		t.Fatalf("expected %d-char join code, got %q", models.RoomCodeLength, room.Code)
	}

	categories, err := repos.Categories.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected exactly one seeded category, got %d", len(categories))
	}

	rules, err := repos.Rules.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected key rule plus everyday rule, got %d rules", len(rules))
	}
	var keyRules, regularRules int
	for _, rule := range rules {
		if rule.IsKeyRule {
			keyRules++
			continue
		}
		regularRules++
		if len(rule.Members) != 1 {
			t.Fatalf("expected one roster slot on the seeded rule, got %d", len(rule.Members))
		}
		slot := rule.Members[0]
		if slot.UserID != nil {
			t.Fatal("expected the seeded rule to be assigned to no one")
		}
		if len(slot.Days) != 7 {
			t.Fatalf("expected everyday assignment, got days %v", slot.Days)
		}
	}
	if keyRules != 1 || regularRules != 1 {
		t.Fatalf("expected 1 key and 1 regular rule, got %d/%d", keyRules, regularRules)
	}

	events, err := repos.Events.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one guide event, got %d", len(events))
	}
	guide := events[0]
	if guide.Name != models.GuideEventName || guide.Icon != models.GuideEventIcon {
		t.Fatalf("unexpected guide event %q/%q", guide.Name, guide.Icon)
	}
	today := Today(service.location)
	guideDay := NewDay(guide.Date, service.location)
	if got := today.DaysUntil(guideDay); got != models.GuideEventDaysOffset {
		t.Fatalf("expected guide event %d days out, got %d", models.GuideEventDaysOffset, got)
	}
}

func TestRoomCreateRejectsSecondRoomAndBadNames(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "reject-owner@example.com", "Owner")

	if _, err := service.Create(owner.ID, ""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired for blank name, got %v", err)
	}
	if _, err := service.Create(owner.ID, "much too long"); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}

	if _, err := service.Create(owner.ID, "Flat"); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := service.Create(owner.ID, "Another"); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom, got %v", err)
	}
}

func TestRoomJoinNormalizesCodeAndCounts(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "join-owner@example.com", "Owner")
	joiner := createServiceTestUser(t, database, "join-joiner@example.com", "Joiner")

	room, err := service.Create(owner.ID, "Flat")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	lowered := "  " + room.Code + "  "
	joined, err := service.Join(joiner.ID, lowered)
	if err != nil {
		t.Fatalf("join room: %v", err)
	}
	if joined.ID != room.ID {
		t.Fatalf("expected to join room %d, got %d", room.ID, joined.ID)
	}

	stored, err := repos.Rooms.FindByID(room.ID)
	if err != nil {
		t.Fatalf("find room: %v", err)
	}
	if stored.UserCount != 2 {
		t.Fatalf("expected user count 2, got %d", stored.UserCount)
	}

	if _, err := service.Join(joiner.ID, room.Code); !errors.Is(err, ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom on second join, got %v", err)
	}
	stranger := createServiceTestUser(t, database, "join-stranger@example.com", "Stranger")
	if _, err := service.Join(stranger.ID, "WRONGCOD"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound for bad code, got %v", err)
	}
}

func TestRoomLeaveHandsOwnershipToEarliestJoined(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "handoff-owner@example.com", "Owner")
	second := createServiceTestUser(t, database, "handoff-second@example.com", "Second")
	third := createServiceTestUser(t, database, "handoff-third@example.com", "Third")

	room, err := service.Create(owner.ID, "Flat")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := service.Join(second.ID, room.Code); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if _, err := service.Join(third.ID, room.Code); err != nil {
		t.Fatalf("third join: %v", err)
	}

	if err := service.Leave(owner.ID); err != nil {
		t.Fatalf("owner leave: %v", err)
	}

	stored, err := repos.Rooms.FindByID(room.ID)
	if err != nil {
		t.Fatalf("find room: %v", err)
	}
	if stored.OwnerID != second.ID {
		t.Fatalf("expected earliest-joined member %d as new owner, got %d", second.ID, stored.OwnerID)
	}
	if stored.UserCount != 2 {
		t.Fatalf("expected user count 2 after departure, got %d", stored.UserCount)
	}
}

func TestRoomLeaveLastMemberDeletesRoom(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "last-owner@example.com", "Owner")

	room, err := service.Create(owner.ID, "Flat")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if err := service.Leave(owner.ID); err != nil {
		t.Fatalf("leave room: %v", err)
	}

	if _, err := repos.Rooms.FindByID(room.ID); err == nil {
		t.Fatal("expected room to be deleted when the last member leaves")
	}
	rules, err := repos.Rules.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected no rules left, got %d", len(rules))
	}

	if err := service.Leave(owner.ID); !errors.Is(err, ErrNoRoom) {
		t.Fatalf("expected ErrNoRoom after leaving, got %v", err)
	}
}

func TestRoomInfoListsMembersInJoinOrder(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := newTestRoomService(repos)
	owner := createServiceTestUser(t, database, "info-owner@example.com", "Owner")
	joiner := createServiceTestUser(t, database, "info-joiner@example.com", "Joiner")

	room, err := service.Create(owner.ID, "Flat")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := service.Join(joiner.ID, room.Code); err != nil {
		t.Fatalf("join room: %v", err)
	}

	info, err := service.Info(joiner.ID)
	if err != nil {
		t.Fatalf("room info: %v", err)
	}
	if info.RoomID != room.ID || info.Code != room.Code || info.OwnerID != owner.ID {
		t.Fatalf("unexpected room info header %+v", info)
	}
	if len(info.Members) != 2 {
		t.Fatalf("expected 2 member profiles, got %d", len(info.Members))
	}
	if info.Members[0].UserID != owner.ID || info.Members[1].UserID != joiner.ID {
		t.Fatal("expected members ordered by join time")
	}
}
