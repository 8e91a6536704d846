// Package dashboard derives summary counters and the upcoming-task lists
// from a mirror snapshot. Everything here is a pure function of the
// snapshot: counters are recomputed from scratch on every call, never
// patched incrementally.
package dashboard

import (
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/mirror"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/goaltrackhq/goaltrack-api/internal/progress"
)

type Stats struct {
	TotalActiveGoals       int `json:"totalActiveGoals"`
	TotalTasks             int `json:"totalTasks"`
	CompletedTasks         int `json:"completedTasks"`
	PendingTasks           int `json:"pendingTasks"`
	DueTodayCount          int `json:"dueTodayCount"`
	OverallProgressPercent int `json:"overallProgressPercent"`
}

// Compute tallies the dashboard counters. Only goals with status "active"
// contribute; a completed or archived goal adds nothing even if it has
// tasks. Due-today matches on the parsed calendar day, not on timestamp
// equality.
func Compute(snap *mirror.Snapshot, now time.Time) Stats {
	var s Stats

	for _, goal := range snap.Goals {
		if goal.Status != models.GoalStatusActive {
			continue
		}
		s.TotalActiveGoals++

		for _, task := range snap.Tasks(goal.ID) {
			s.TotalTasks++

			if task.Status == models.TaskStatusCompleted {
				s.CompletedTasks++
			} else {
				s.PendingTasks++
			}

			if task.Status == models.TaskStatusPending {
				if due, ok := models.ParseDay(task.DueDate); ok && models.SameDay(due, now) {
					s.DueTodayCount++
				}
			}
		}
	}

	s.OverallProgressPercent = progress.Percent(s.CompletedTasks, s.TotalTasks)
	return s
}

// Item pairs a task with its parent goal's title for display.
type Item struct {
	Task      models.Task `json:"task"`
	GoalTitle string      `json:"goalTitle"`
}

// Valid upcoming filters.
const (
	FilterToday    = "today"
	FilterTomorrow = "tomorrow"
	FilterWeek     = "week"
)

// Upcoming selects pending tasks whose due date satisfies the filter, in
// mirror iteration order. "week" means due within [now, now+7d] regardless
// of calendar week boundaries; a due date is its local midnight, so a task
// due today drops out of the window once the day has started.
func Upcoming(snap *mirror.Snapshot, filter string, now time.Time) []Item {
	items := []Item{}

	for _, goal := range snap.Goals {
		for _, task := range snap.Tasks(goal.ID) {
			if task.Status != models.TaskStatusPending {
				continue
			}
			due, ok := models.ParseDay(task.DueDate)
			if !ok {
				continue
			}

			switch filter {
			case FilterToday:
				if !models.SameDay(due, now) {
					continue
				}
			case FilterTomorrow:
				if !models.SameDay(due, now.AddDate(0, 0, 1)) {
					continue
				}
			case FilterWeek:
				if due.Before(now) || due.After(now.AddDate(0, 0, 7)) {
					continue
				}
			default:
				continue
			}

			items = append(items, Item{Task: task, GoalTitle: goal.Title})
		}
	}

	return items
}

// todayWidgetCap bounds the dashboard widget to its five visible slots.
const todayWidgetCap = 5

// TodayTasks is the dashboard widget selection: pending tasks of active
// goals due today, capped at five, in mirror iteration order (goal order,
// then task order within the goal), not sorted by due time.
func TodayTasks(snap *mirror.Snapshot, now time.Time) []Item {
	items := []Item{}

	for _, goal := range snap.Goals {
		if goal.Status != models.GoalStatusActive {
			continue
		}
		for _, task := range snap.Tasks(goal.ID) {
			if task.Status != models.TaskStatusPending {
				continue
			}
			due, ok := models.ParseDay(task.DueDate)
			if !ok || !models.SameDay(due, now) {
				continue
			}
			items = append(items, Item{Task: task, GoalTitle: goal.Title})
		}
	}

	if len(items) > todayWidgetCap {
		items = items[:todayWidgetCap]
	}
	return items
}
