package handlers

import (
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// GetTheme returns the persisted theme preference, defaulting to "system"
// when none has been saved yet.
func GetTheme(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	theme, err := Store.GetTheme(c.Context(), userID)
	if err != nil {
		logger.L.Errorw("theme load failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load settings",
		})
	}

	return c.JSON(fiber.Map{"theme": theme})
}

func SetTheme(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !models.ValidTheme(req.Theme) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Theme must be light, dark or system",
		})
	}

	if err := Store.SetTheme(c.Context(), userID, req.Theme); err != nil {
		logger.L.Errorw("theme save failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save settings",
		})
	}

	return c.JSON(fiber.Map{"theme": req.Theme})
}
