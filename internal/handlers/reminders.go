package handlers

import (
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/dashboard"
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// SaveReminderPref appends a reminder settings record. The record is
// write-only: nothing reads it back.
func SaveReminderPref(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pref := models.ReminderPref{
		OwnerID:   userID,
		Enabled:   req.Enabled,
		Frequency: req.Frequency,
		Time:      req.Time,
		Channel:   req.Channel,
	}
	if err := Store.AppendReminderPref(c.Context(), &pref); err != nil {
		logger.L.Errorw("reminder pref save failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save reminder settings",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(pref)
}

// GetUpcomingTasks lists pending tasks due today, tomorrow or within the
// next seven days, each paired with its parent goal's title.
func GetUpcomingTasks(c *fiber.Ctx) error {
	filter := c.Query("filter", dashboard.FilterToday)
	if filter != dashboard.FilterToday && filter != dashboard.FilterTomorrow && filter != dashboard.FilterWeek {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filter",
		})
	}

	snap, err := refreshedSnapshot(c, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load tasks",
		})
	}

	return c.JSON(dashboard.Upcoming(snap, filter, time.Now()))
}
