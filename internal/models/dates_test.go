package models

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestParseDay(t *testing.T) {
	got, ok := ParseDay("2024-05-15")
	assert.Equal(t, ok, true)
	assert.Equal(t, got, time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local))

	for _, bad := range []string{"", "not a date", "2024-5-15", "15/05/2024", "2024-05-15T10:00:00Z"} {
		_, ok := ParseDay(bad)
		assert.Equal(t, ok, false)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 15, 0, 1, 0, 0, time.Local)
	night := time.Date(2024, 5, 15, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, 5, 16, 0, 0, 0, 0, time.Local)

	assert.Equal(t, SameDay(morning, night), true)
	assert.Equal(t, SameDay(night, nextDay), false)
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2024, 5, 15, 18, 45, 30, 123, time.Local)
	assert.Equal(t, StartOfDay(at), time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local))
}

func TestValidators(t *testing.T) {
	assert.Equal(t, ValidPriority(PriorityHigh), true)
	assert.Equal(t, ValidPriority("urgent"), false)

	assert.Equal(t, ValidGoalStatus(GoalStatusArchived), true)
	assert.Equal(t, ValidGoalStatus("paused"), false)

	assert.Equal(t, ValidTaskStatus(TaskStatusCompleted), true)
	assert.Equal(t, ValidTaskStatus("done"), false)

	assert.Equal(t, ValidTheme(ThemeSystem), true)
	assert.Equal(t, ValidTheme("solarized"), false)
}
