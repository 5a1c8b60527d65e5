package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Rooms       *RoomRepository
	Categories  *RuleCategoryRepository
	Rules       *RuleRepository
	Checks      *CheckRepository
	Events      *EventRepository
	Personality *PersonalityRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Rooms:       NewRoomRepository(database),
		Categories:  NewRuleCategoryRepository(database),
		Rules:       NewRuleRepository(database),
		Checks:      NewCheckRepository(database),
		Events:      NewEventRepository(database),
		Personality: NewPersonalityRepository(database),
	}
}
