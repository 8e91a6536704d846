package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/goaltrackhq/goaltrack-api/internal/mirror"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
)

// fixed reference instant: mid-afternoon, away from day boundaries
var testNow = time.Date(2024, 5, 15, 15, 30, 0, 0, time.Local)

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

type snapshotBuilder struct {
	snap *mirror.Snapshot
}

func newSnapshot() *snapshotBuilder {
	return &snapshotBuilder{snap: &mirror.Snapshot{
		TasksByGoal: map[uuid.UUID][]models.Task{},
		FetchedAt:   testNow,
	}}
}

func (b *snapshotBuilder) goal(title, status string, tasks ...models.Task) *snapshotBuilder {
	id := uuid.New()
	b.snap.Goals = append(b.snap.Goals, models.Goal{ID: id, Title: title, Status: status})
	for i := range tasks {
		tasks[i].GoalID = id
	}
	b.snap.TasksByGoal[id] = tasks
	return b
}

func pending(title, dueDate string) models.Task {
	return models.Task{ID: uuid.New(), Title: title, DueDate: dueDate, Status: models.TaskStatusPending}
}

func completed(title string) models.Task {
	return models.Task{ID: uuid.New(), Title: title, Status: models.TaskStatusCompleted}
}

func TestComputeCountsActiveGoalsOnly(t *testing.T) {
	snap := newSnapshot().
		goal("active goal", models.GoalStatusActive,
			pending("due today", day(0)),
			pending("due later", day(3)),
			completed("done"),
		).
		goal("archived goal", models.GoalStatusArchived,
			pending("hidden", day(0)),
		).
		goal("completed goal", models.GoalStatusCompleted,
			completed("also hidden"),
		).
		snap

	stats := Compute(snap, testNow)
	assert.Equal(t, stats.TotalActiveGoals, 1)
	assert.Equal(t, stats.TotalTasks, 3)
	assert.Equal(t, stats.CompletedTasks, 1)
	assert.Equal(t, stats.PendingTasks, 2)
	assert.Equal(t, stats.DueTodayCount, 1)
	assert.Equal(t, stats.OverallProgressPercent, 33)
}

func TestComputeEmptySnapshot(t *testing.T) {
	stats := Compute(newSnapshot().snap, testNow)
	assert.Equal(t, stats, Stats{})
}

func TestDueTodayMatchesCalendarDayNotTimestamp(t *testing.T) {
	snap := newSnapshot().
		goal("g", models.GoalStatusActive, pending("due", day(0))).
		snap

	// any local time during the due day matches
	morning := time.Date(2024, 5, 15, 0, 1, 0, 0, time.Local)
	night := time.Date(2024, 5, 15, 23, 59, 0, 0, time.Local)
	assert.Equal(t, Compute(snap, morning).DueTodayCount, 1)
	assert.Equal(t, Compute(snap, night).DueTodayCount, 1)

	nextDay := time.Date(2024, 5, 16, 0, 1, 0, 0, time.Local)
	assert.Equal(t, Compute(snap, nextDay).DueTodayCount, 0)
}

func TestDueTodayIgnoresCompletedTasks(t *testing.T) {
	done := completed("finished")
	done.DueDate = day(0)
	snap := newSnapshot().
		goal("g", models.GoalStatusActive, done).
		snap

	assert.Equal(t, Compute(snap, testNow).DueTodayCount, 0)
}

func TestUpcomingToday(t *testing.T) {
	snap := newSnapshot().
		goal("fitness", models.GoalStatusActive,
			pending("run", day(0)),
			pending("stretch", day(1)),
			completed("warm up"),
		).
		snap

	items := Upcoming(snap, FilterToday, testNow)
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Task.Title, "run")
	assert.Equal(t, items[0].GoalTitle, "fitness")
}

func TestUpcomingTomorrow(t *testing.T) {
	snap := newSnapshot().
		goal("g", models.GoalStatusActive,
			pending("a", day(0)),
			pending("b", day(1)),
			pending("c", day(2)),
		).
		snap

	items := Upcoming(snap, FilterTomorrow, testNow)
	assert.Equal(t, len(items), 1)
	assert.Equal(t, items[0].Task.Title, "b")
}

func TestUpcomingWeekBoundaries(t *testing.T) {
	snap := newSnapshot().
		goal("g", models.GoalStatusActive,
			pending("yesterday", day(-1)),
			pending("today", day(0)),
			pending("tomorrow", day(1)),
			pending("seventh", day(7)),
			pending("eighth", day(8)),
		).
		snap

	// "today" parses to local midnight, already behind a mid-afternoon
	// now, so only strictly future due dates up to now+7d survive
	items := Upcoming(snap, FilterWeek, testNow)
	assert.Equal(t, len(items), 2)
	assert.Equal(t, items[0].Task.Title, "tomorrow")
	assert.Equal(t, items[1].Task.Title, "seventh")
}

func TestUpcomingIncludesNonActiveGoals(t *testing.T) {
	// the reminders view lists across all goals; only the dashboard
	// widget restricts to active ones
	snap := newSnapshot().
		goal("archived", models.GoalStatusArchived, pending("still listed", day(0))).
		snap

	assert.Equal(t, len(Upcoming(snap, FilterToday, testNow)), 1)
}

func TestTodayTasksActiveGoalsOnly(t *testing.T) {
	snap := newSnapshot().
		goal("active", models.GoalStatusActive,
			pending("a1", day(0)),
			pending("a2", day(0)),
		).
		goal("archived", models.GoalStatusArchived,
			pending("x", day(0)),
		).
		snap

	items := TodayTasks(snap, testNow)
	assert.Equal(t, len(items), 2)
	for _, item := range items {
		assert.Equal(t, item.GoalTitle, "active")
	}
}

func TestTodayTasksCappedAtFiveInMirrorOrder(t *testing.T) {
	b := newSnapshot()
	tasks := make([]models.Task, 7)
	for i := range tasks {
		tasks[i] = pending(fmt.Sprintf("task %d", i), day(0))
	}
	b.goal("busy", models.GoalStatusActive, tasks...)

	items := TodayTasks(b.snap, testNow)
	assert.Equal(t, len(items), 5)
	for i, item := range items {
		assert.Equal(t, item.Task.Title, fmt.Sprintf("task %d", i))
	}
}
