package handlers

import (
	"errors"
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/listview"
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/middleware"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetAllTasks returns the task table rows across all goals, with the
// view's filter, sort and search applied.
func GetAllTasks(c *fiber.Ctx) error {
	snap, err := refreshedSnapshot(c, c.QueryBool("refresh"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load tasks",
		})
	}

	list := listview.TaskList{
		Rows:   listview.TaskRows(snap),
		Filter: c.Query("filter", "all"),
		Sort:   c.Query("sort"),
		Query:  c.Query("q"),
		Now:    time.Now(),
	}
	list.Apply()

	// total is the unfiltered row count, for a "showing X of Y" display
	return c.JSON(fiber.Map{
		"tasks": list.Visible(),
		"total": len(list.Rows),
	})
}

// ownedGoal resolves the goalId route param and checks the goal belongs
// to the caller. When ok is false the error response has already been
// written and the handler must return nil without touching the goal.
func ownedGoal(c *fiber.Ctx) (*models.Goal, bool) {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("goalId"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
		return nil, false
	}

	goal, err := Store.GetGoal(c.Context(), userID, goalID)
	if errors.Is(err, store.ErrNotFound) {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
		return nil, false
	}
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load goal",
		})
		return nil, false
	}
	return goal, true
}

func GetGoalTasks(c *fiber.Ctx) error {
	goal, ok := ownedGoal(c)
	if !ok {
		return nil
	}

	tasks, err := Store.ListTasks(c.Context(), goal.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load tasks",
		})
	}
	return c.JSON(tasks)
}

func CreateTask(c *fiber.Ctx) error {
	goal, ok := ownedGoal(c)
	if !ok {
		return nil
	}
	userID := middleware.GetUserID(c)

	var req models.CreateTaskRequest
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
	if req.Status == "" {
		req.Status = models.TaskStatusPending
	}
	if !models.ValidTaskStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	task := models.Task{
		GoalID:      goal.ID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	}

	if err := Store.CreateTask(c.Context(), &task); err != nil {
		logger.L.Errorw("task create failed", "goalId", goal.ID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save task",
		})
	}

	return finishTaskMutation(c, userID, goal.ID, fiber.StatusCreated, task)
}

func UpdateTask(c *fiber.Ctx) error {
	goal, ok := ownedGoal(c)
	if !ok {
		return nil
	}
	userID := middleware.GetUserID(c)

	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	var req models.UpdateTaskRequest
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
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status",
			})
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		err = Store.UpdateTask(c.Context(), goal.ID, taskID, updates)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		if err != nil {
			logger.L.Errorw("task update failed", "taskId", taskID, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save task",
			})
		}
	}

	task, err := Store.GetTask(c.Context(), goal.ID, taskID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	return finishTaskMutation(c, userID, goal.ID, fiber.StatusOK, *task)
}

func DeleteTask(c *fiber.Ctx) error {
	goal, ok := ownedGoal(c)
	if !ok {
		return nil
	}
	userID := middleware.GetUserID(c)

	taskID, err := uuid.Parse(c.Params("taskId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid task ID",
		})
	}

	err = Store.DeleteTask(c.Context(), goal.ID, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}
	if err != nil {
		logger.L.Errorw("task delete failed", "taskId", taskID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task",
		})
	}

	return finishTaskMutation(c, userID, goal.ID, fiber.StatusOK, nil)
}

// finishTaskMutation recalculates the goal's progress after a task write,
// force-refreshes the mirror so the next read sees the new state, then
// responds.
func finishTaskMutation(c *fiber.Ctx, userID, goalID uuid.UUID, status int, body interface{}) error {
	pct, err := Recalc.Recalculate(c.Context(), userID, goalID)
	if err != nil {
		logger.L.Errorw("progress recalculation failed", "goalId", goalID, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recalculate progress",
		})
	}

	if _, err := refreshedSnapshot(c, true); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load tasks",
		})
	}

	resp := fiber.Map{"progress": pct}
	if body != nil {
		resp["task"] = body
	}
	return c.Status(status).JSON(resp)
}
