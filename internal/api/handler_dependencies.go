package api

import (
	"github.com/hous-app/hous-server/internal/db"
	"github.com/hous-app/hous-server/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, config Config) *Handler {
	handler := &Handler{
		db:        database,
		secretKey: []byte(config.SecretKey),
		location:  config.Location,
	}

	repositories := db.NewRepositories(database)
	handler.repositories = repositories
	handler.authService = services.NewAuthService(repositories.Users)
	handler.settingsService = services.NewSettingsService(repositories.Users)
	handler.roomService = services.NewRoomService(repositories.Rooms, repositories.Users, repositories.Personality, config.Location)
	handler.ruleService = services.NewRuleService(repositories.Rules, repositories.Categories, repositories.Users, config.Location)
	handler.checkService = services.NewCheckService(repositories.Checks, repositories.Rules, config.Location)
	handler.homeService = services.NewHomeService(
		repositories.Rules,
		repositories.Categories,
		repositories.Checks,
		repositories.Events,
		repositories.Users,
		repositories.Personality,
		config.Location,
		config.HomeKeyRuleLimit,
		config.CategoryColorLimit,
	)
	handler.eventService = services.NewEventService(repositories.Events, repositories.Users, repositories.Personality, config.Location)
	handler.quizService = services.NewQuizService(repositories.Personality, repositories.Users)
	return handler
}
