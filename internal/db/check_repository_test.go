package db

import (
	"testing"
	"time"

	"github.com/hous-app/hous-server/internal/models"
)

func TestReplaceForPairCollapsesStaleRows(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	repo := NewCheckRepository(database)

	today := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	stale := []models.Check{
		{UserID: 1, RuleID: 7, Date: today.AddDate(0, 0, -3)},
		{UserID: 1, RuleID: 7, Date: today.AddDate(0, 0, -1)},
	}
	if err := database.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale checks: %v", err)
	}

	if err := repo.ReplaceForPair(1, 7, today); err != nil {
		t.Fatalf("replace for pair: %v", err)
	}

	count, err := repo.CountForPair(1, 7)
	if err != nil {
		t.Fatalf("count for pair: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row after replace, got %d", count)
	}

	exists, err := repo.ExistsForDay(1, 7, today, today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("exists for day: %v", err)
	}
	if !exists {
		t.Fatal("expected the surviving row to be dated today")
	}
}

func TestDeleteForDayLeavesOtherPairsAlone(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	repo := NewCheckRepository(database)

	today := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	rows := []models.Check{
		{UserID: 1, RuleID: 7, Date: today},
		{UserID: 2, RuleID: 7, Date: today},
		{UserID: 1, RuleID: 8, Date: today},
	}
	if err := database.Create(&rows).Error; err != nil {
		t.Fatalf("seed checks: %v", err)
	}

	if err := repo.DeleteForDay(1, 7, today, tomorrow); err != nil {
		t.Fatalf("delete for day: %v", err)
	}

	ruleIDs, err := repo.ListUserChecksForDay(1, today, tomorrow)
	if err != nil {
		t.Fatalf("list user checks: %v", err)
	}
	if len(ruleIDs) != 1 || ruleIDs[0] != 8 {
		t.Fatalf("expected only rule 8 left for user 1, got %v", ruleIDs)
	}

	roomChecks, err := repo.ListRoomChecksForDay([]uint{7, 8}, today, tomorrow)
	if err != nil {
		t.Fatalf("list room checks: %v", err)
	}
	if len(roomChecks) != 2 {
		t.Fatalf("expected 2 remaining room checks, got %d", len(roomChecks))
	}
}
