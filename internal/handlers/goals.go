package handlers

import (
	"errors"

	"github.com/goaltrackhq/goaltrack-api/internal/listview"
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetGoals returns the goal cards with the view's filter, sort and search
// applied. Reads go through the mirror; pass ?refresh=true to bypass the
// stale window after an out-of-band write.
func GetGoals(c *fiber.Ctx) error {
	snap, err := refreshedSnapshot(c, c.QueryBool("refresh"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	list := listview.GoalList{
		Rows:   listview.GoalRows(snap),
		Filter: c.Query("filter", "all"),
		Sort:   c.Query("sort"),
		Query:  c.Query("q"),
	}
	list.Apply()

	// total is the unfiltered row count, for a "showing X of Y" display
	return c.JSON(fiber.Map{
		"goals": list.Visible(),
		"total": len(list.Rows),
	})
}

func CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(req.Priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}
	if req.Status == "" {
		req.Status = models.GoalStatusActive
	}
	if !models.ValidGoalStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	goal := models.Goal{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Status:      req.Status,
	}

	if err := Store.CreateGoal(c.Context(), &goal); err != nil {
		logger.L.Errorw("goal create failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save goal",
		})
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func GetGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	goal, err := Store.GetGoal(c.Context(), userID, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goal",
		})
	}

	return c.JSON(goal)
}

func UpdateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Title is required",
			})
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid priority",
			})
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !models.ValidGoalStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status",
			})
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		err = Store.UpdateGoal(c.Context(), userID, goalID, updates)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}
		if err != nil {
			logger.L.Errorw("goal update failed", "goalId", goalID, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save goal",
			})
		}
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	goal, err := Store.GetGoal(c.Context(), userID, goalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	return c.JSON(goal)
}

// CompleteGoal marks a goal completed without touching its tasks.
func CompleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	err = Store.UpdateGoal(c.Context(), userID, goalID, map[string]interface{}{
		"status": models.GoalStatusCompleted,
	})
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	if err != nil {
		logger.L.Errorw("goal complete failed", "goalId", goalID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save goal",
		})
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteGoal deletes the goal's tasks and then the goal itself. The
// sequence is not transactional; a failure partway is surfaced and the
// store may be left with orphaned tasks.
func DeleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	err = Store.DeleteGoal(c.Context(), userID, goalID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	if err != nil {
		logger.L.Errorw("goal delete failed", "goalId", goalID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RecalculateAll recomputes every goal's progress from its tasks. Mirrors
// the startup pass the dashboard does before first render.
func RecalculateAll(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	if err := Recalc.RecalculateAll(c.Context(), userID); err != nil {
		logger.L.Errorw("recalculate all failed", "ownerId", userID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goals",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
