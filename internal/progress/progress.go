// Package progress derives each goal's completion percentage from its
// task sub-collection and writes it back to the store.
package progress

import (
	"context"
	"math"

	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
)

// Store is the subset of the store the recalculator needs.
type Store interface {
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]models.Goal, error)
	ListTasks(ctx context.Context, goalID uuid.UUID) ([]models.Task, error)
	SetGoalProgress(ctx context.Context, ownerID, goalID uuid.UUID, progress int) error
}

// Percent is round-half-up of 100*completed/total, 0 when total is 0.
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type Recalculator struct {
	store Store
}

func NewRecalculator(store Store) *Recalculator {
	return &Recalculator{store: store}
}

// Recalculate recomputes one goal's progress from its current task list
// and persists it. It must run after any task mutation and before the
// caller responds, else the displayed progress is stale.
func (r *Recalculator) Recalculate(ctx context.Context, ownerID, goalID uuid.UUID) (int, error) {
	tasks, err := r.store.ListTasks(ctx, goalID)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}

	pct := Percent(completed, len(tasks))
	if err := r.store.SetGoalProgress(ctx, ownerID, goalID, pct); err != nil {
		return 0, err
	}
	return pct, nil
}

// RecalculateAll recomputes every goal of the owner, sequentially.
func (r *Recalculator) RecalculateAll(ctx context.Context, ownerID uuid.UUID) error {
	goals, err := r.store.ListGoals(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, goal := range goals {
		if _, err := r.Recalculate(ctx, ownerID, goal.ID); err != nil {
			return err
		}
	}
	return nil
}
