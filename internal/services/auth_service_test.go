package services

import (
	"errors"
	"testing"
)

func TestSignUpNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	repos, _ := newTestRepositories(t)
	service := NewAuthService(repos.Users)

	user, err := service.SignUp("  New.User@Example.COM ", "secret-pass", "  Newbie ")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Name != "Newbie" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if user.PasswordHash == "secret-pass" || user.PasswordHash == "" {
		t.Fatal("expected the password to be stored hashed")
	}
	if !user.NotificationEnabled {
		t.Fatal("expected notifications enabled by default")
	}

	if _, err := service.SignUp("new.user@example.com", "other-pass", "Other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if _, err := service.SignUp("NEW.USER@EXAMPLE.COM", "other-pass", "Other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected case-insensitive duplicate detection, got %v", err)
	}
}

func TestSignUpValidatesName(t *testing.T) {
	t.Parallel()

	repos, _ := newTestRepositories(t)
	service := NewAuthService(repos.Users)

	if _, err := service.SignUp("a@example.com", "secret-pass", "   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := service.SignUp("a@example.com", "secret-pass", "a very long display name"); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}

func TestLoginChecksCredentials(t *testing.T) {
	t.Parallel()

	repos, _ := newTestRepositories(t)
	service := NewAuthService(repos.Users)

	if _, err := service.SignUp("login@example.com", "secret-pass", "Login"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	user, err := service.Login(" LOGIN@example.com ", "secret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "login@example.com" {
		t.Fatalf("unexpected user %q", user.Email)
	}

	if _, err := service.Login("login@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := service.Login("missing@example.com", "secret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDeleteAccountRemovesUserAndChecks(t *testing.T) {
	t.Parallel()

	repos, database := newTestRepositories(t)
	service := NewAuthService(repos.Users)

	user, err := service.SignUp("delete@example.com", "secret-pass", "Gone")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if err := database.Exec(
		`INSERT INTO checks (user_id, rule_id, date) VALUES (?, ?, ?)`,
		user.ID, 1, "2026-08-31",
	).Error; err != nil {
		t.Fatalf("seed check: %v", err)
	}

	if err := service.DeleteAccount(user.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, err := service.FindByID(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after deletion, got %v", err)
	}

	var remaining int64
	if err := database.Raw(`SELECT COUNT(*) FROM checks WHERE user_id = ?`, user.ID).Scan(&remaining).Error; err != nil {
		t.Fatalf("count checks: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected the user's checks to be deleted, got %d", remaining)
	}
}
