// Package store is the client for the remote document store: goals with a
// per-goal task sub-collection, notes, reminder preferences, and the theme
// setting. Queries used are collection scans, equality filters on the owner
// field, and descending order by creation timestamp.
package store

import (
	"context"
	"errors"

	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("store: not found")

type Store struct {
	db *gorm.DB

	goalWatch *goalWatch
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		goalWatch: newGoalWatch(),
	}
}

// Goals collection

// ListGoals returns the owner's goals ordered by creation timestamp,
// newest first.
func (s *Store) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (s *Store) GetGoal(ctx context.Context, ownerID, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", goalID, ownerID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return err
	}
	s.notifyGoals(ctx, goal.OwnerID)
	return nil
}

func (s *Store) UpdateGoal(ctx context.Context, ownerID, goalID uuid.UUID, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ? AND owner_id = ?", goalID, ownerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.notifyGoals(ctx, ownerID)
	return nil
}

// SetGoalProgress is the recalculator's write-back path.
func (s *Store) SetGoalProgress(ctx context.Context, ownerID, goalID uuid.UUID, progress int) error {
	return s.UpdateGoal(ctx, ownerID, goalID, map[string]interface{}{"progress": progress})
}

// DeleteGoal removes the goal's task sub-collection and then the goal
// document. The two deletes are a sequence, not a transaction: a failure
// partway leaves dangling tasks or an orphaned goal with no rollback.
func (s *Store) DeleteGoal(ctx context.Context, ownerID, goalID uuid.UUID) error {
	if _, err := s.GetGoal(ctx, ownerID, goalID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("goal_id = ?", goalID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("id = ?", goalID).Delete(&models.Goal{}).Error; err != nil {
		return err
	}
	s.notifyGoals(ctx, ownerID)
	return nil
}

// Task sub-collection

func (s *Store) ListTasks(ctx context.Context, goalID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (s *Store) GetTask(ctx context.Context, goalID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Where("id = ? AND goal_id = ?", taskID, goalID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Create(task).Error
}

func (s *Store) UpdateTask(ctx context.Context, goalID, taskID uuid.UUID, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND goal_id = ?", taskID, goalID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, goalID, taskID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND goal_id = ?", taskID, goalID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Notes collection

func (s *Store) ListNotes(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	return s.db.WithContext(ctx).Create(note).Error
}

func (s *Store) UpdateNote(ctx context.Context, ownerID, noteID uuid.UUID, text string) error {
	result := s.db.WithContext(ctx).Model(&models.Note{}).
		Where("id = ? AND owner_id = ?", noteID, ownerID).
		Update("text", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, ownerID, noteID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", noteID, ownerID).
		Delete(&models.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reminder preferences, write-only

func (s *Store) AppendReminderPref(ctx context.Context, pref *models.ReminderPref) error {
	return s.db.WithContext(ctx).Create(pref).Error
}

// Theme setting

func (s *Store) GetTheme(ctx context.Context, ownerID uuid.UUID) (string, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ThemeSystem, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Theme, nil
}

func (s *Store) SetTheme(ctx context.Context, ownerID uuid.UUID, theme string) error {
	setting := models.Setting{OwnerID: ownerID, Theme: theme}
	return s.db.WithContext(ctx).Save(&setting).Error
}
