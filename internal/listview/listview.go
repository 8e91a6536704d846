// Package listview is the filter/sort engine behind the goal cards and the
// task table. It works on typed rows built from a mirror snapshot rather
// than on re-parsed display strings, but keeps the view semantics: filters
// and the global search toggle visibility independently, and sorting
// reorders only the surviving rows, moving them behind the hidden ones.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/mirror"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
)

// GoalRow carries the fields the goal card view filters and sorts on.
type GoalRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	Deadline    string `json:"deadline"`
	Visible     bool   `json:"visible"`
}

// TaskRow carries the fields of one task table row, with the parent goal's
// title mirrored in for display and search.
type TaskRow struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalId"`
	Title     string `json:"title"`
	GoalTitle string `json:"goalTitle"`
	DueDate   string `json:"dueDate"`
	Status    string `json:"status"`
	Visible   bool   `json:"visible"`
}

// GoalRows builds card rows from a snapshot. Archived goals are never
// rendered, so they never reach the engine.
func GoalRows(snap *mirror.Snapshot) []GoalRow {
	rows := []GoalRow{}
	for _, g := range snap.Goals {
		if g.Status == models.GoalStatusArchived {
			continue
		}
		rows = append(rows, GoalRow{
			ID:          g.ID.String(),
			Title:       g.Title,
			Description: g.Description,
			Priority:    g.Priority,
			Status:      g.Status,
			Progress:    g.Progress,
			Deadline:    g.Deadline,
			Visible:     true,
		})
	}
	return rows
}

// TaskRows builds table rows from a snapshot, in goal order then task
// order within each goal.
func TaskRows(snap *mirror.Snapshot) []TaskRow {
	rows := []TaskRow{}
	for _, g := range snap.Goals {
		for _, t := range snap.Tasks(g.ID) {
			rows = append(rows, TaskRow{
				ID:        t.ID.String(),
				GoalID:    g.ID.String(),
				Title:     t.Title,
				GoalTitle: g.Title,
				DueDate:   t.DueDate,
				Status:    t.Status,
				Visible:   true,
			})
		}
	}
	return rows
}

// Goal list engine

// GoalList holds the goal view's control state. Apply recomputes row
// visibility and order from scratch, so applying the same state twice
// yields the same result.
type GoalList struct {
	Rows   []GoalRow
	Filter string // "all" or an exact priority
	Sort   string // "", "title", "priority", "progress", "deadline"
	Query  string // global search, substring on title
}

func (l *GoalList) Apply() {
	query := strings.ToLower(strings.TrimSpace(l.Query))

	for i := range l.Rows {
		row := &l.Rows[i]
		show := l.Filter == "" || l.Filter == "all" || row.Priority == l.Filter
		if show && query != "" && !strings.Contains(strings.ToLower(row.Title), query) {
			show = false
		}
		row.Visible = show
	}

	l.Rows = reorderGoals(l.Rows, l.Sort)
}

// Visible returns the surviving rows in display order.
func (l *GoalList) Visible() []GoalRow {
	out := []GoalRow{}
	for _, r := range l.Rows {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}

// reorderGoals moves visible rows behind the hidden ones in sorted order,
// the way appending re-sorted elements to their parent does. Comparators
// return equal on equal keys; the stable sort preserves the prior order.
func reorderGoals(rows []GoalRow, sortKey string) []GoalRow {
	cmp := goalLess(sortKey)
	if cmp == nil {
		return rows
	}

	hidden := []GoalRow{}
	visible := []GoalRow{}
	for _, r := range rows {
		if r.Visible {
			visible = append(visible, r)
		} else {
			hidden = append(hidden, r)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return cmp(visible[i], visible[j])
	})

	return append(hidden, visible...)
}

func goalLess(sortKey string) func(a, b GoalRow) bool {
	switch sortKey {
	case "title":
		return func(a, b GoalRow) bool { return a.Title < b.Title }
	case "priority":
		return func(a, b GoalRow) bool { return a.Priority < b.Priority }
	case "progress":
		// descending
		return func(a, b GoalRow) bool { return a.Progress > b.Progress }
	case "deadline":
		return func(a, b GoalRow) bool {
			da, oka := models.ParseDay(a.Deadline)
			db, okb := models.ParseDay(b.Deadline)
			if !oka || !okb {
				return false
			}
			return da.Before(db)
		}
	default:
		return nil
	}
}

// Task list engine

// TaskList holds the task table's control state. Overdue keeps rows whose
// due date is earlier than Now; it looks only at the due date, so a
// completed task with a past due date still survives the overdue filter.
type TaskList struct {
	Rows   []TaskRow
	Filter string // "all", "pending", "completed", "overdue"
	Sort   string // "", "due_date", "status", "title"
	Query  string // global search, substring on task or goal title
	Now    time.Time
}

func (l *TaskList) Apply() {
	query := strings.ToLower(strings.TrimSpace(l.Query))

	for i := range l.Rows {
		row := &l.Rows[i]
		show := true

		switch l.Filter {
		case "pending":
			show = row.Status == models.TaskStatusPending
		case "completed":
			show = row.Status == models.TaskStatusCompleted
		case "overdue":
			due, ok := models.ParseDay(row.DueDate)
			show = ok && due.Before(l.Now)
		}

		if show && query != "" &&
			!strings.Contains(strings.ToLower(row.Title), query) &&
			!strings.Contains(strings.ToLower(row.GoalTitle), query) {
			show = false
		}
		row.Visible = show
	}

	l.Rows = reorderTasks(l.Rows, l.Sort)
}

func (l *TaskList) Visible() []TaskRow {
	out := []TaskRow{}
	for _, r := range l.Rows {
		if r.Visible {
			out = append(out, r)
		}
	}
	return out
}

func reorderTasks(rows []TaskRow, sortKey string) []TaskRow {
	cmp := taskLess(sortKey)
	if cmp == nil {
		return rows
	}

	hidden := []TaskRow{}
	visible := []TaskRow{}
	for _, r := range rows {
		if r.Visible {
			visible = append(visible, r)
		} else {
			hidden = append(hidden, r)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return cmp(visible[i], visible[j])
	})

	return append(hidden, visible...)
}

func taskLess(sortKey string) func(a, b TaskRow) bool {
	switch sortKey {
	case "due_date":
		return func(a, b TaskRow) bool {
			da, oka := models.ParseDay(a.DueDate)
			db, okb := models.ParseDay(b.DueDate)
			if !oka || !okb {
				return false
			}
			return da.Before(db)
		}
	case "status":
		return func(a, b TaskRow) bool { return a.Status < b.Status }
	case "title":
		return func(a, b TaskRow) bool { return a.Title < b.Title }
	default:
		return nil
	}
}
