package services

import (
	"errors"
	"testing"

	"github.com/hous-app/hous-server/internal/db"
	"github.com/hous-app/hous-server/internal/models"
	"gorm.io/gorm"
)

type ruleServiceFixture struct {
	repos    *db.Repositories
	database *gorm.DB
	rooms    *RoomService
	rules    *RuleService
	owner    models.User
	roommate models.User
	room     models.Room
	category models.RuleCategory
}

func newRuleServiceFixture(t *testing.T) *ruleServiceFixture {
	t.Helper()

	repos, database := newTestRepositories(t)
	rooms := newTestRoomService(repos)
	rules := newTestRuleService(repos)

	owner := createServiceTestUser(t, database, "rule-owner@example.com", "Owner")
	roommate := createServiceTestUser(t, database, "rule-roommate@example.com", "Roommate")

	room, err := rooms.Create(owner.ID, "Flat")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if _, err := rooms.Join(roommate.ID, room.Code); err != nil {
		t.Fatalf("join room: %v", err)
	}

	categories, err := repos.Categories.ListByRoom(room.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}

	return &ruleServiceFixture{
		repos:    repos,
		database: database,
		rooms:    rooms,
		rules:    rules,
		owner:    owner,
		roommate: roommate,
		room:     room,
		category: categories[0],
	}
}

func (fixture *ruleServiceFixture) ruleInput(name string) RuleInput {
	return RuleInput{
		CategoryID: fixture.category.ID,
		Name:       name,
		Members: []RuleMemberInput{
			{UserID: &fixture.owner.ID, Days: []int{0, 1, 2}},
		},
	}
}

func TestCreateRuleValidatesInvariants(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	tests := []struct {
		name    string
		input   RuleInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   RuleInput{CategoryID: fixture.category.ID, Name: "  "},
			wantErr: ErrNameRequired,
		},
		{
			name: "key rule with members",
			input: RuleInput{
				CategoryID: fixture.category.ID,
				Name:       "Quiet hours",
				IsKeyRule:  true,
				Members:    []RuleMemberInput{{UserID: &fixture.owner.ID, Days: []int{1}}},
			},
			wantErr: ErrKeyRuleHasMembers,
		},
		{
			name: "key rule with notification",
			input: RuleInput{
				CategoryID:          fixture.category.ID,
				Name:                "Quiet hours",
				IsKeyRule:           true,
				NotificationEnabled: true,
			},
			wantErr: ErrKeyRuleHasMembers,
		},
		{
			name:    "regular rule without members",
			input:   RuleInput{CategoryID: fixture.category.ID, Name: "Dishes"},
			wantErr: ErrRuleNeedsMember,
		},
		{
			name: "member without days",
			input: RuleInput{
				CategoryID: fixture.category.ID,
				Name:       "Dishes",
				Members:    []RuleMemberInput{{UserID: &fixture.owner.ID, Days: []int{}}},
			},
			wantErr: ErrMemberNeedsDay,
		},
		{
			name: "weekday out of range",
			input: RuleInput{
				CategoryID: fixture.category.ID,
				Name:       "Dishes",
				Members:    []RuleMemberInput{{UserID: &fixture.owner.ID, Days: []int{7}}},
			},
			wantErr: ErrInvalidWeekday,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := fixture.rules.CreateRule(fixture.owner.ID, testCase.input); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestCreateRuleRejectsStrangerAssignment(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)
	stranger := createServiceTestUser(t, fixture.database, "rule-stranger@example.com", "Stranger")

	input := RuleInput{
		CategoryID: fixture.category.ID,
		Name:       "Dishes",
		Members:    []RuleMemberInput{{UserID: &stranger.ID, Days: []int{1}}},
	}
	if _, err := fixture.rules.CreateRule(fixture.owner.ID, input); !errors.Is(err, ErrForbiddenRoom) {
		t.Fatalf("expected ErrForbiddenRoom for non-member assignee, got %v", err)
	}
}

func TestUpdateRuleLocksKeyFlag(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	rule, err := fixture.rules.CreateRule(fixture.owner.ID, fixture.ruleInput("Dishes"))
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	flipped := RuleInput{
		CategoryID: fixture.category.ID,
		Name:       "Dishes",
		IsKeyRule:  true,
	}
	if err := fixture.rules.UpdateRule(fixture.owner.ID, rule.ID, flipped); !errors.Is(err, ErrKeyRuleFlagLocked) {
		t.Fatalf("expected ErrKeyRuleFlagLocked, got %v", err)
	}
}

func TestUpdateRuleClearsTemporaryOverride(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	rule, err := fixture.rules.CreateRule(fixture.owner.ID, fixture.ruleInput("Dishes"))
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}
	if err := fixture.rules.SetTemporaryMembers(fixture.owner.ID, rule.ID, []uint{fixture.roommate.ID}); err != nil {
		t.Fatalf("set temporary members: %v", err)
	}

	updated := fixture.ruleInput("Dishes again")
	updated.Members = []RuleMemberInput{{UserID: &fixture.roommate.ID, Days: []int{3, 4}}}
	if err := fixture.rules.UpdateRule(fixture.owner.ID, rule.ID, updated); err != nil {
		t.Fatalf("update rule: %v", err)
	}

	stored, err := fixture.repos.Rules.FindByID(rule.ID)
	if err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	if stored.TmpUpdatedAt != nil || len(stored.TmpMemberIDs) != 0 {
		t.Fatal("expected roster update to drop the temporary override")
	}
	if stored.Name != "Dishes again" {
		t.Fatalf("expected renamed rule, got %q", stored.Name)
	}
}

func TestSetTemporaryMembersGuards(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	rules, err := fixture.repos.Rules.ListByRoom(fixture.room.ID)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	var keyRuleID, regularRuleID uint
	for _, rule := range rules {
		if rule.IsKeyRule {
			keyRuleID = rule.ID
		} else {
			regularRuleID = rule.ID
		}
	}

	if err := fixture.rules.SetTemporaryMembers(fixture.owner.ID, keyRuleID, []uint{fixture.owner.ID}); !errors.Is(err, ErrKeyRuleHasMembers) {
		t.Fatalf("expected key rule override to be rejected, got %v", err)
	}

	stranger := createServiceTestUser(t, fixture.database, "tmp-stranger@example.com", "Stranger")
	if err := fixture.rules.SetTemporaryMembers(fixture.owner.ID, regularRuleID, []uint{stranger.ID}); !errors.Is(err, ErrForbiddenRoom) {
		t.Fatalf("expected non-member override to be rejected, got %v", err)
	}

	if err := fixture.rules.SetTemporaryMembers(fixture.owner.ID, regularRuleID, []uint{}); err != nil {
		t.Fatalf("set empty override: %v", err)
	}
	stored, err := fixture.repos.Rules.FindByID(regularRuleID)
	if err != nil {
		t.Fatalf("reload rule: %v", err)
	}
	if stored.TmpUpdatedAt == nil {
		t.Fatal("expected empty override to be stamped")
	}
}

func TestCategoryNameLimitsAndDuplicates(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	if _, err := fixture.rules.CreateCategory(fixture.owner.ID, "Cleaning", "CLEAN"); !errors.Is(err, ErrDuplicateCategoryName) {
		t.Fatalf("expected ErrDuplicateCategoryName, got %v", err)
	}
	if _, err := fixture.rules.CreateCategory(fixture.owner.ID, "Kitchen", "NOT_AN_ICON"); !errors.Is(err, ErrInvalidIcon) {
		t.Fatalf("expected ErrInvalidIcon, got %v", err)
	}

	created, err := fixture.rules.CreateCategory(fixture.owner.ID, "Kitchen", "DISH")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Renaming a category onto its own name is fine; onto a sibling's is not.
	if err := fixture.rules.UpdateCategory(fixture.owner.ID, created.ID, "Kitchen", "DISH"); err != nil {
		t.Fatalf("self rename: %v", err)
	}
	if err := fixture.rules.UpdateCategory(fixture.owner.ID, created.ID, "Cleaning", "DISH"); !errors.Is(err, ErrDuplicateCategoryName) {
		t.Fatalf("expected sibling rename to fail, got %v", err)
	}
}

func TestDeleteCategoryCascadesRulesAndChecks(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)

	rule, err := fixture.rules.CreateRule(fixture.owner.ID, fixture.ruleInput("Dishes"))
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}

	if err := fixture.rules.DeleteCategory(fixture.owner.ID, fixture.category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	if _, err := fixture.repos.Rules.FindByID(rule.ID); err == nil {
		t.Fatal("expected rules of the deleted category to be gone")
	}
	remaining, err := fixture.repos.Categories.ListByRoom(fixture.room.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no categories left, got %d", len(remaining))
	}
}
