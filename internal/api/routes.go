package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handler.SignUp)
	auth.Post("/login", handler.Login)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("/me", handler.GetMyProfile)
	users.Put("/me", handler.UpdateMyProfile)
	users.Put("/me/notification", handler.UpdateNotification)
	users.Put("/me/fcm-token", handler.UpdateFCMToken)
	users.Delete("/me", handler.DeleteAccount)

	rooms := api.Group("/rooms", handler.AuthRequired)
	rooms.Post("", handler.CreateRoom)
	rooms.Post("/join", handler.JoinRoom)
	rooms.Get("/now", handler.RoomRequired, handler.GetRoomInfo)
	rooms.Put("/now/name", handler.RoomRequired, handler.RenameRoom)
	rooms.Delete("/now/leave", handler.RoomRequired, handler.LeaveRoom)
	rooms.Get("/now/today", handler.RoomRequired, handler.GetRoomToday)

	home := api.Group("/home", handler.AuthRequired, handler.RoomRequired)
	home.Get("", handler.GetHome)

	categories := api.Group("/categories", handler.AuthRequired, handler.RoomRequired)
	categories.Get("", handler.ListCategories)
	categories.Post("", handler.CreateCategory)
	categories.Put("/:categoryID", handler.UpdateCategory)
	categories.Delete("/:categoryID", handler.DeleteCategory)
	categories.Get("/:categoryID/rules", handler.GetCategoryRules)

	rules := api.Group("/rules", handler.AuthRequired, handler.RoomRequired)
	rules.Get("/me", handler.GetMyToDo)
	rules.Post("", handler.CreateRule)
	rules.Get("/:ruleID", handler.GetRuleDetail)
	rules.Put("/:ruleID", handler.UpdateRule)
	rules.Delete("/:ruleID", handler.DeleteRule)
	rules.Put("/:ruleID/today", handler.SetTemporaryMembers)
	rules.Post("/:ruleID/check", handler.CheckRule)
	rules.Delete("/:ruleID/check", handler.UncheckRule)

	events := api.Group("/events", handler.AuthRequired, handler.RoomRequired)
	events.Get("", handler.ListEvents)
	events.Post("", handler.CreateEvent)
	events.Get("/:eventID", handler.GetEventDetail)
	events.Put("/:eventID", handler.UpdateEvent)
	events.Delete("/:eventID", handler.DeleteEvent)
	events.Post("/:eventID/join", handler.JoinEvent)
	events.Delete("/:eventID/leave", handler.LeaveEvent)

	types := api.Group("/types", handler.AuthRequired)
	types.Get("", handler.ListTypes)
	types.Get("/quiz", handler.GetQuizQuestions)
	types.Post("/quiz", handler.SubmitQuiz)
	types.Get("/:typeID", handler.GetType)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
