package services

import (
	"errors"
	"testing"
)

func TestUpdateProfileTrimsAndValidates(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := NewSettingsService(repos.Users)
	user := createServiceTestUser(t, database, "profile@example.com", "Old Name")

	input := ProfileInput{
		Name: "  Fresh  ",
		Job:  " Designer ",
		Bio:  " Night owl ",
		Tags: []string{" tidy ", "", "cook"},
	}
	if err := service.UpdateProfile(user.ID, input); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	stored, err := repos.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Name != "Fresh" || stored.Job != "Designer" || stored.Bio != "Night owl" {
		t.Fatalf("expected trimmed fields, got %q/%q/%q", stored.Name, stored.Job, stored.Bio)
	}
	if len(stored.Tags) != 2 || stored.Tags[0] != "tidy" || stored.Tags[1] != "cook" {
		t.Fatalf("expected blank tags dropped, got %v", stored.Tags)
	}

	if err := service.UpdateProfile(user.ID, ProfileInput{Name: " "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	tooMany := ProfileInput{
		Name: "Fresh",
		Tags: []string{"a", "b", "c", "d", "e", "f"},
	}
	if err := service.UpdateProfile(user.ID, tooMany); !errors.Is(err, ErrTooManyTags) {
		t.Fatalf("expected ErrTooManyTags, got %v", err)
	}
}

func TestUpdateNotificationAndFCMToken(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := NewSettingsService(repos.Users)
	user := createServiceTestUser(t, database, "settings@example.com", "Settings")

	if err := service.UpdateNotification(user.ID, false); err != nil {
		t.Fatalf("update notification: %v", err)
	}
	if err := service.UpdateFCMToken(user.ID, "  device-token-1  "); err != nil {
		t.Fatalf("update fcm token: %v", err)
	}

	stored, err := repos.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.NotificationEnabled {
		t.Fatal("expected notifications disabled")
	}
	if stored.FCMToken != "device-token-1" {
		t.Fatalf("expected trimmed token, got %q", stored.FCMToken)
	}
}
