package handlers

import (
	"errors"
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetNotes returns the caller's notes newest first, narrowed by the view
// filter: all, today, yesterday, month or year, matched on the note's
// creation day.
func GetNotes(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	filter := c.Query("filter", "all")

	notes, err := Store.ListNotes(c.Context(), userID)
	if err != nil {
		logger.L.Errorw("notes list failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load notes",
		})
	}

	now := time.Now()
	filtered := []models.Note{}
	for _, note := range notes {
		switch filter {
		case "today":
			if !models.SameDay(note.CreatedAt, now) {
				continue
			}
		case "yesterday":
			if !models.SameDay(note.CreatedAt, now.AddDate(0, 0, -1)) {
				continue
			}
		case "month":
			if note.CreatedAt.Month() != now.Month() || note.CreatedAt.Year() != now.Year() {
				continue
			}
		case "year":
			if note.CreatedAt.Year() != now.Year() {
				continue
			}
		}
		filtered = append(filtered, note)
	}

	return c.JSON(filtered)
}

func CreateNote(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SaveNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	note := models.Note{
		OwnerID: userID,
		Text:    req.Text,
	}
	if err := Store.CreateNote(c.Context(), &note); err != nil {
		logger.L.Errorw("note create failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save note",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func UpdateNote(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid note ID",
		})
	}

	var req models.SaveNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	err = Store.UpdateNote(c.Context(), userID, noteID, req.Text)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Note not found",
		})
	}
	if err != nil {
		logger.L.Errorw("note update failed", "noteId", noteID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save note",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func DeleteNote(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid note ID",
		})
	}

	err = Store.DeleteNote(c.Context(), userID, noteID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Note not found",
		})
	}
	if err != nil {
		logger.L.Errorw("note delete failed", "noteId", noteID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete note",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
