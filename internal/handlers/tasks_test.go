package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// taskTestApp registers the task routes behind a stub auth middleware.
// The invalid-ID paths below reject before any store access, so no
// database is needed.
func taskTestApp() *fiber.App {
	Setup(store.New(nil))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", uuid.New())
		return c.Next()
	})
	app.Get("/goals/:goalId/tasks", GetGoalTasks)
	app.Post("/goals/:goalId/tasks", CreateTask)
	app.Put("/goals/:goalId/tasks/:taskId", UpdateTask)
	app.Delete("/goals/:goalId/tasks/:taskId", DeleteTask)
	return app
}

func TestTaskRoutesRejectMalformedGoalID(t *testing.T) {
	app := taskTestApp()

	requests := []struct {
		method, path string
	}{
		{fiber.MethodGet, "/goals/not-a-uuid/tasks"},
		{fiber.MethodPost, "/goals/not-a-uuid/tasks"},
		{fiber.MethodPut, "/goals/not-a-uuid/tasks/" + uuid.NewString()},
		{fiber.MethodDelete, "/goals/not-a-uuid/tasks/" + uuid.NewString()},
	}

	for _, r := range requests {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		assert.Equal(t, err, nil)
		assert.Equal(t, resp.StatusCode, fiber.StatusBadRequest)
	}
}
