package store

import (
	"context"
	"sync"

	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
)

// goalWatch tracks live subscriptions on the goals collection per owner.
// Callbacks receive the owner's full ordered goal list after every goal
// document write, the progress write-back included, so a task mutation
// reaches subscribers once its recalculation lands.
type goalWatch struct {
	mu       sync.RWMutex
	nextID   int
	watchers map[uuid.UUID]map[int]func([]models.Goal)
}

func newGoalWatch() *goalWatch {
	return &goalWatch{
		watchers: make(map[uuid.UUID]map[int]func([]models.Goal)),
	}
}

// SubscribeGoals registers a callback for one owner's goal list and returns
// an unsubscribe function. The callback is delivered on a separate goroutine
// and must not call back into Subscribe/unsubscribe from within itself.
func (s *Store) SubscribeGoals(ownerID uuid.UUID, fn func([]models.Goal)) func() {
	s.goalWatch.mu.Lock()
	defer s.goalWatch.mu.Unlock()

	id := s.goalWatch.nextID
	s.goalWatch.nextID++

	if s.goalWatch.watchers[ownerID] == nil {
		s.goalWatch.watchers[ownerID] = make(map[int]func([]models.Goal))
	}
	s.goalWatch.watchers[ownerID][id] = fn

	return func() {
		s.goalWatch.mu.Lock()
		defer s.goalWatch.mu.Unlock()
		if fns, ok := s.goalWatch.watchers[ownerID]; ok {
			delete(fns, id)
			if len(fns) == 0 {
				delete(s.goalWatch.watchers, ownerID)
			}
		}
	}
}

func (s *Store) notifyGoals(ctx context.Context, ownerID uuid.UUID) {
	s.goalWatch.mu.RLock()
	n := len(s.goalWatch.watchers[ownerID])
	s.goalWatch.mu.RUnlock()
	if n == 0 {
		return
	}

	goals, err := s.ListGoals(ctx, ownerID)
	if err != nil {
		if logger.L != nil {
			logger.L.Errorw("goal subscription fetch failed", "ownerId", ownerID, "err", err)
		}
		return
	}

	s.goalWatch.mu.RLock()
	fns := make([]func([]models.Goal), 0, n)
	for _, fn := range s.goalWatch.watchers[ownerID] {
		fns = append(fns, fn)
	}
	s.goalWatch.mu.RUnlock()

	go func() {
		for _, fn := range fns {
			fn(goals)
		}
	}()
}
