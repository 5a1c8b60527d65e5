package db

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	embeddedmigrations "github.com/hous-app/hous-server/migrations"
	"github.com/hous-app/hous-server/internal/models"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "hous-clean.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeTestDatabase(t, database)

	wantTables := []string{
		"users", "rooms", "rule_categories", "rules", "rule_members",
		"events", "checks", "personality_types", "quiz_questions",
	}
	for _, table := range wantTables {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %q after migrations", table)
		}
	}

	entries, err := fs.ReadDir(embeddedmigrations.Files, ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	wantApplied := 0
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			wantApplied++
		}
	}

	var applied int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied).Error; err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if int(applied) != wantApplied {
		t.Fatalf("expected %d applied migrations, got %d", wantApplied, applied)
	}
}

func TestOpenSQLiteSeedsReferenceDataOnce(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "hous-seed.db")

	for attempt := 0; attempt < 2; attempt++ {
		database, err := OpenSQLite(databasePath)
		if err != nil {
			t.Fatalf("open sqlite (attempt %d): %v", attempt, err)
		}

		var typeCount int64
		if err := database.Model(&models.PersonalityType{}).Count(&typeCount).Error; err != nil {
			t.Fatalf("count personality types: %v", err)
		}
		if int(typeCount) != len(models.DefaultPersonalityTypes()) {
			t.Fatalf("expected %d personality types, got %d", len(models.DefaultPersonalityTypes()), typeCount)
		}

		var questionCount int64
		if err := database.Model(&models.QuizQuestion{}).Count(&questionCount).Error; err != nil {
			t.Fatalf("count quiz questions: %v", err)
		}
		if int(questionCount) != len(models.DefaultQuizQuestions()) {
			t.Fatalf("expected %d quiz questions, got %d", len(models.DefaultQuizQuestions()), questionCount)
		}

		sqlDB, err := database.DB()
		if err != nil {
			t.Fatalf("open sql db: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("close sqlite: %v", err)
		}
	}
}

func TestOpenSQLiteEnforcesUniqueUserEmail(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "hous-email-index.db")
	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeTestDatabase(t, database)

	firstUser := models.User{
		Email:        "dup@example.com",
		PasswordHash: "hash-1",
		Name:         "First",
	}
	if err := database.Create(&firstUser).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}

	secondUser := models.User{
		Email:        "dup@example.com",
		PasswordHash: "hash-2",
		Name:         "Second",
	}
	if err := database.Create(&secondUser).Error; err == nil {
		t.Fatal("expected duplicate email insert to fail")
	}
}
