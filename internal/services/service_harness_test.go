package services

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/hous-app/hous-server/internal/db"
	"github.com/hous-app/hous-server/internal/models"
)

func newTestRepositories(t *testing.T) (*db.Repositories, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "hous-service-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db.NewRepositories(database), database
}

func createServiceTestUser(t *testing.T, database *gorm.DB, email string, name string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "test-hash",
		Name:         name,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func newTestRoomService(repos *db.Repositories) *RoomService {
	return NewRoomService(repos.Rooms, repos.Users, repos.Personality, time.UTC)
}

func newTestRuleService(repos *db.Repositories) *RuleService {
	return NewRuleService(repos.Rules, repos.Categories, repos.Users, time.UTC)
}

func newTestHomeService(repos *db.Repositories, keyRuleLimit int, colorLimit int) *HomeService {
	return NewHomeService(
		repos.Rules,
		repos.Categories,
		repos.Checks,
		repos.Events,
		repos.Users,
		repos.Personality,
		time.UTC,
		keyRuleLimit,
		colorLimit,
	)
}
