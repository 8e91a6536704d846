package handlers

import (
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/dashboard"
	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the summary counters, always derived fresh from
// the current mirror snapshot.
func GetDashboard(c *fiber.Ctx) error {
	snap, err := refreshedSnapshot(c, c.QueryBool("refresh"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	return c.JSON(dashboard.Compute(snap, time.Now()))
}

// GetTodayTasks returns the dashboard widget's due-today selection.
func GetTodayTasks(c *fiber.Ctx) error {
	snap, err := refreshedSnapshot(c, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	return c.JSON(dashboard.TodayTasks(snap, time.Now()))
}
