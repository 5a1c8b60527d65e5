package services

import (
	"errors"
	"testing"
	"time"
)

func newTestEventService(fixture *ruleServiceFixture) *EventService {
	return NewEventService(fixture.repos.Events, fixture.repos.Users, fixture.repos.Personality, time.UTC)
}

func TestEventCreateValidatesInput(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)
	events := newTestEventService(fixture)

	tests := []struct {
		name    string
		input   EventInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   EventInput{Name: " ", Icon: "PARTY", Date: "2026-09-05", ParticipantIDs: []uint{fixture.owner.ID}},
			wantErr: ErrNameRequired,
		},
		{
			name:    "name too long",
			input:   EventInput{Name: "a much much too long name", Icon: "PARTY", Date: "2026-09-05", ParticipantIDs: []uint{fixture.owner.ID}},
			wantErr: ErrNameTooLong,
		},
		{
			name:    "unknown icon",
			input:   EventInput{Name: "Dinner", Icon: "NOPE", Date: "2026-09-05", ParticipantIDs: []uint{fixture.owner.ID}},
			wantErr: ErrInvalidIcon,
		},
		{
			name:    "bad date",
			input:   EventInput{Name: "Dinner", Icon: "PARTY", Date: "05/09/2026", ParticipantIDs: []uint{fixture.owner.ID}},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "no participants",
			input:   EventInput{Name: "Dinner", Icon: "PARTY", Date: "2026-09-05"},
			wantErr: ErrNotParticipant,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := events.Create(fixture.room.ID, testCase.input); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}

	stranger := createServiceTestUser(t, fixture.database, "event-stranger@example.com", "Stranger")
	outside := EventInput{Name: "Dinner", Icon: "PARTY", Date: "2026-09-05", ParticipantIDs: []uint{stranger.ID}}
	if _, err := events.Create(fixture.room.ID, outside); !errors.Is(err, ErrForbiddenRoom) {
		t.Fatalf("expected ErrForbiddenRoom for outside participant, got %v", err)
	}
}

func TestEventJoinAndLeaveLifecycle(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)
	events := newTestEventService(fixture)

	created, err := events.Create(fixture.room.ID, EventInput{
		Name:           "Dinner",
		Icon:           "DRINK",
		Date:           "2026-09-05",
		ParticipantIDs: []uint{fixture.owner.ID},
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if err := events.Join(fixture.owner.ID, fixture.room.ID, created.ID); !errors.Is(err, ErrAlreadyParticipant) {
		t.Fatalf("expected ErrAlreadyParticipant, got %v", err)
	}
	if err := events.Join(fixture.roommate.ID, fixture.room.ID, created.ID); err != nil {
		t.Fatalf("roommate join: %v", err)
	}

	detail, err := events.Detail(fixture.room.ID, created.ID)
	if err != nil {
		t.Fatalf("event detail: %v", err)
	}
	if len(detail.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(detail.Participants))
	}
	if detail.Date != "2026-09-05" {
		t.Fatalf("expected date 2026-09-05, got %s", detail.Date)
	}

	if err := events.Leave(fixture.roommate.ID, fixture.room.ID, created.ID); err != nil {
		t.Fatalf("roommate leave: %v", err)
	}
	if err := events.Leave(fixture.roommate.ID, fixture.room.ID, created.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant after leaving, got %v", err)
	}

	// Last participant leaving deletes the event.
	if err := events.Leave(fixture.owner.ID, fixture.room.ID, created.ID); err != nil {
		t.Fatalf("owner leave: %v", err)
	}
	if _, err := events.Detail(fixture.room.ID, created.ID); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected event to be gone, got %v", err)
	}
}

func TestEventRoomScoping(t *testing.T) {
	t.Parallel()

	fixture := newRuleServiceFixture(t)
	events := newTestEventService(fixture)

	created, err := events.Create(fixture.room.ID, EventInput{
		Name:           "Dinner",
		Icon:           "PARTY",
		Date:           "2026-09-05",
		ParticipantIDs: []uint{fixture.owner.ID},
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	if _, err := events.Detail(fixture.room.ID+1, created.ID); !errors.Is(err, ErrForbiddenRoom) {
		t.Fatalf("expected ErrForbiddenRoom for foreign room, got %v", err)
	}
	if err := events.Delete(fixture.room.ID, created.ID+100); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
