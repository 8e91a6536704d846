package routes

import (
	"github.com/goaltrackhq/goaltrack-api/internal/handlers"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Post("/recalculate", handlers.RecalculateAll)
	goals.Get("/:id", handlers.GetGoal)
	goals.Put("/:id", handlers.UpdateGoal)
	goals.Post("/:id/complete", handlers.CompleteGoal)
	goals.Delete("/:id", handlers.DeleteGoal)

	// Task sub-collection — every mutation recalculates the goal's progress
	goals.Get("/:goalId/tasks", handlers.GetGoalTasks)
	goals.Post("/:goalId/tasks", handlers.CreateTask)
	goals.Put("/:goalId/tasks/:taskId", handlers.UpdateTask)
	goals.Delete("/:goalId/tasks/:taskId", handlers.DeleteTask)

	protected.Get("/tasks", handlers.GetAllTasks)

	protected.Get("/dashboard", handlers.GetDashboard)
	protected.Get("/dashboard/today", handlers.GetTodayTasks)

	protected.Get("/upcoming", handlers.GetUpcomingTasks)
	protected.Post("/reminders", handlers.SaveReminderPref)

	notes := protected.Group("/notes")
	notes.Get("/", handlers.GetNotes)
	notes.Post("/", handlers.CreateNote)
	notes.Put("/:id", handlers.UpdateNote)
	notes.Delete("/:id", handlers.DeleteNote)

	settings := protected.Group("/settings")
	settings.Get("/theme", handlers.GetTheme)
	settings.Put("/theme", handlers.SetTheme)

	// WebSocket for the live goal subscription
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/goals", websocket.New(handlers.HandleGoalStream))
}
