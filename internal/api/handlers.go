package api

import (
	"time"

	"github.com/hous-app/hous-server/internal/db"
	"github.com/hous-app/hous-server/internal/services"
	"gorm.io/gorm"
)

// Config carries the tunables the view assemblers and token issuing need.
type Config struct {
	SecretKey          string
	Location           *time.Location
	HomeKeyRuleLimit   int
	CategoryColorLimit int
}

type Handler struct {
	db        *gorm.DB
	secretKey []byte
	location  *time.Location

	repositories    *db.Repositories
	authService     *services.AuthService
	settingsService *services.SettingsService
	roomService     *services.RoomService
	ruleService     *services.RuleService
	checkService    *services.CheckService
	homeService     *services.HomeService
	eventService    *services.EventService
	quizService     *services.QuizService
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type roomCreateInput struct {
	Name string `json:"name"`
}

type roomJoinInput struct {
	Code string `json:"code"`
}

type roomRenameInput struct {
	Name string `json:"name"`
}

type categoryInput struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type tmpMembersInput struct {
	MemberIDs []uint `json:"tmpRuleMembers"`
}

type notificationInput struct {
	Enabled bool `json:"enabled"`
}

type fcmTokenInput struct {
	Token string `json:"fcmToken"`
}

type quizSubmitInput struct {
	Answers []int `json:"answers"`
}
