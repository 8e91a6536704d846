package listview

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/goaltrackhq/goaltrack-api/internal/mirror"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
)

var listNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local)

func goalRow(title, priority string, progress int, deadline string) GoalRow {
	return GoalRow{
		ID:       uuid.NewString(),
		Title:    title,
		Priority: priority,
		Status:   models.GoalStatusActive,
		Progress: progress,
		Deadline: deadline,
		Visible:  true,
	}
}

func taskRow(title, goalTitle, dueDate, status string) TaskRow {
	return TaskRow{
		ID:        uuid.NewString(),
		GoalID:    uuid.NewString(),
		Title:     title,
		GoalTitle: goalTitle,
		DueDate:   dueDate,
		Status:    status,
		Visible:   true,
	}
}

func visibleGoalTitles(l *GoalList) []string {
	titles := []string{}
	for _, r := range l.Visible() {
		titles = append(titles, r.Title)
	}
	return titles
}

func visibleTaskTitles(l *TaskList) []string {
	titles := []string{}
	for _, r := range l.Visible() {
		titles = append(titles, r.Title)
	}
	return titles
}

func TestGoalRowsExcludeArchived(t *testing.T) {
	snap := &mirror.Snapshot{
		Goals: []models.Goal{
			{ID: uuid.New(), Title: "kept", Status: models.GoalStatusActive},
			{ID: uuid.New(), Title: "gone", Status: models.GoalStatusArchived},
			{ID: uuid.New(), Title: "done", Status: models.GoalStatusCompleted},
		},
		TasksByGoal: map[uuid.UUID][]models.Task{},
	}

	rows := GoalRows(snap)
	assert.Equal(t, len(rows), 2)
	assert.Equal(t, rows[0].Title, "kept")
	assert.Equal(t, rows[1].Title, "done")
}

func TestGoalPriorityFilter(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("a", models.PriorityHigh, 0, ""),
			goalRow("b", models.PriorityLow, 0, ""),
			goalRow("c", models.PriorityHigh, 0, ""),
		},
		Filter: models.PriorityHigh,
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"a", "c"})

	// "all" restores everything
	l.Filter = "all"
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"a", "c", "b"})
}

func TestGoalSortByTitle(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("cherry", models.PriorityLow, 0, ""),
			goalRow("apple", models.PriorityLow, 0, ""),
			goalRow("banana", models.PriorityLow, 0, ""),
		},
		Sort: "title",
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"apple", "banana", "cherry"})
}

func TestGoalSortByProgressDescending(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("low", models.PriorityLow, 20, ""),
			goalRow("high", models.PriorityLow, 90, ""),
			goalRow("mid", models.PriorityLow, 50, ""),
		},
		Sort: "progress",
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"high", "mid", "low"})
}

func TestGoalSortByDeadlineAscending(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("later", models.PriorityLow, 0, "2024-06-01"),
			goalRow("soon", models.PriorityLow, 0, "2024-05-16"),
			goalRow("no deadline", models.PriorityLow, 0, ""),
		},
		Sort: "deadline",
	}
	l.Apply()

	got := visibleGoalTitles(l)
	assert.Equal(t, got[0], "soon")
	assert.Equal(t, got[1], "later")
}

func TestGoalSortTiesKeepPriorOrder(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("first", models.PriorityMedium, 40, ""),
			goalRow("second", models.PriorityMedium, 40, ""),
			goalRow("third", models.PriorityMedium, 40, ""),
		},
		Sort: "progress",
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"first", "second", "third"})
}

func TestGoalFilterThenSortIdempotent(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("zebra", models.PriorityHigh, 0, ""),
			goalRow("yak", models.PriorityLow, 0, ""),
			goalRow("ant", models.PriorityHigh, 0, ""),
		},
		Filter: models.PriorityHigh,
		Sort:   "title",
	}

	l.Apply()
	first := visibleGoalTitles(l)
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), first)
	assert.Equal(t, first, []string{"ant", "zebra"})
}

func TestGoalSortMovesVisibleBehindHidden(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("b high", models.PriorityHigh, 0, ""),
			goalRow("x low", models.PriorityLow, 0, ""),
			goalRow("a high", models.PriorityHigh, 0, ""),
		},
		Filter: models.PriorityHigh,
		Sort:   "title",
	}
	l.Apply()

	// the hidden row keeps its slot at the front, sorted survivors follow
	assert.Equal(t, l.Rows[0].Title, "x low")
	assert.Equal(t, l.Rows[0].Visible, false)
	assert.Equal(t, l.Rows[1].Title, "a high")
	assert.Equal(t, l.Rows[2].Title, "b high")
}

func TestGoalSearchCaseInsensitive(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("Learn Go", models.PriorityHigh, 0, ""),
			goalRow("Run marathon", models.PriorityLow, 0, ""),
		},
		Query: "LEARN",
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"Learn Go"})

	// clearing the query restores filter-only visibility
	l.Query = ""
	l.Apply()
	assert.Equal(t, len(l.Visible()), 2)
}

func TestGoalSearchCombinesWithFilter(t *testing.T) {
	l := &GoalList{
		Rows: []GoalRow{
			goalRow("read books", models.PriorityHigh, 0, ""),
			goalRow("read news", models.PriorityLow, 0, ""),
			goalRow("write code", models.PriorityHigh, 0, ""),
		},
		Filter: models.PriorityHigh,
		Query:  "read",
	}
	l.Apply()
	assert.Equal(t, visibleGoalTitles(l), []string{"read books"})
}

func TestTaskStatusFilters(t *testing.T) {
	rows := []TaskRow{
		taskRow("a", "g", "2024-05-20", models.TaskStatusPending),
		taskRow("b", "g", "2024-05-20", models.TaskStatusCompleted),
		taskRow("c", "g", "2024-05-21", models.TaskStatusPending),
	}

	l := &TaskList{Rows: rows, Filter: "pending", Now: listNow}
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), []string{"a", "c"})

	l.Filter = "completed"
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), []string{"b"})

	l.Filter = "all"
	l.Apply()
	assert.Equal(t, len(l.Visible()), 3)
}

func TestTaskOverdueIgnoresStatus(t *testing.T) {
	l := &TaskList{
		Rows: []TaskRow{
			taskRow("past pending", "g", "2024-05-10", models.TaskStatusPending),
			taskRow("past completed", "g", "2024-05-10", models.TaskStatusCompleted),
			taskRow("future", "g", "2024-05-20", models.TaskStatusPending),
			taskRow("undated", "g", "", models.TaskStatusPending),
		},
		Filter: "overdue",
		Now:    listNow,
	}
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), []string{"past pending", "past completed"})
}

func TestTaskSortByDueDate(t *testing.T) {
	l := &TaskList{
		Rows: []TaskRow{
			taskRow("late", "g", "2024-06-01", models.TaskStatusPending),
			taskRow("early", "g", "2024-05-01", models.TaskStatusPending),
			taskRow("middle", "g", "2024-05-15", models.TaskStatusPending),
		},
		Sort: "due_date",
		Now:  listNow,
	}
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), []string{"early", "middle", "late"})
}

func TestTaskSortByStatus(t *testing.T) {
	l := &TaskList{
		Rows: []TaskRow{
			taskRow("p1", "g", "", models.TaskStatusPending),
			taskRow("c1", "g", "", models.TaskStatusCompleted),
			taskRow("p2", "g", "", models.TaskStatusPending),
		},
		Sort: "status",
		Now:  listNow,
	}
	l.Apply()
	// "completed" < "pending"; equal keys keep prior order
	assert.Equal(t, visibleTaskTitles(l), []string{"c1", "p1", "p2"})
}

func TestTaskSearchMatchesGoalTitle(t *testing.T) {
	l := &TaskList{
		Rows: []TaskRow{
			taskRow("morning run", "Fitness", "", models.TaskStatusPending),
			taskRow("read chapter", "Study", "", models.TaskStatusPending),
			taskRow("fitness test", "Study", "", models.TaskStatusPending),
		},
		Query: "fitness",
		Now:   listNow,
	}
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), []string{"morning run", "fitness test"})
}

func TestTaskFilterSortSearchIdempotent(t *testing.T) {
	l := &TaskList{
		Rows: []TaskRow{
			taskRow("write tests", "Project", "2024-05-20", models.TaskStatusPending),
			taskRow("write docs", "Project", "2024-05-18", models.TaskStatusPending),
			taskRow("ship it", "Project", "2024-05-19", models.TaskStatusCompleted),
		},
		Filter: "pending",
		Sort:   "due_date",
		Query:  "write",
		Now:    listNow,
	}

	l.Apply()
	first := visibleTaskTitles(l)
	l.Apply()
	assert.Equal(t, visibleTaskTitles(l), first)
	assert.Equal(t, first, []string{"write docs", "write tests"})
}
