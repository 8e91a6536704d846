// Package mirror keeps an in-process snapshot of one owner's goals and
// their task sub-collections, refreshed on demand from the store.
package mirror

import (
	"context"
	"sync"
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// StaleWindow is how long a populated snapshot is considered fresh enough
// to skip a refetch.
const StaleWindow = 30 * time.Second

// Source is the subset of the store the mirror reads from.
type Source interface {
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]models.Goal, error)
	ListTasks(ctx context.Context, goalID uuid.UUID) ([]models.Task, error)
}

// Snapshot is a point-in-time view: every goal present has its full task
// list. Readers must treat it as immutable.
type Snapshot struct {
	Goals       []models.Goal
	TasksByGoal map[uuid.UUID][]models.Task
	FetchedAt   time.Time
}

// Tasks returns the task list for a goal, or nil if the goal is unknown.
func (s *Snapshot) Tasks(goalID uuid.UUID) []models.Task {
	if s == nil {
		return nil
	}
	return s.TasksByGoal[goalID]
}

type refreshCall struct {
	done chan struct{}
	err  error
}

// Mirror caches one owner's goals and tasks. Concurrent Refresh callers
// share a single in-flight fetch, and each fetch is tagged with a
// generation so a slow completion can never overwrite a newer snapshot.
type Mirror struct {
	source  Source
	ownerID uuid.UUID
	now     func() time.Time

	mu         sync.Mutex
	snap       *Snapshot
	generation uint64
	inflight   *refreshCall
}

func New(source Source, ownerID uuid.UUID) *Mirror {
	return &Mirror{
		source:  source,
		ownerID: ownerID,
		now:     time.Now,
	}
}

// Refresh fetches the full goal set and every goal's tasks concurrently,
// then swaps the snapshot in one step. Unless forced, it is a no-op while
// the current snapshot is younger than StaleWindow. On any fetch error the
// previous snapshot is kept untouched and the error is returned.
func (m *Mirror) Refresh(ctx context.Context, force bool) error {
	m.mu.Lock()
	if !force && m.snap != nil && m.now().Sub(m.snap.FetchedAt) < StaleWindow {
		m.mu.Unlock()
		return nil
	}
	if c := m.inflight; c != nil {
		// Join the refresh already in progress rather than racing it.
		m.mu.Unlock()
		<-c.done
		return c.err
	}
	c := &refreshCall{done: make(chan struct{})}
	m.inflight = c
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	snap, err := m.fetch(ctx)

	m.mu.Lock()
	if err == nil && gen == m.generation {
		m.snap = snap
	}
	m.inflight = nil
	m.mu.Unlock()

	c.err = err
	close(c.done)
	return err
}

func (m *Mirror) fetch(ctx context.Context) (*Snapshot, error) {
	goals, err := m.source.ListGoals(ctx, m.ownerID)
	if err != nil {
		return nil, err
	}

	taskLists := make([][]models.Task, len(goals))
	g, gctx := errgroup.WithContext(ctx)
	for i := range goals {
		i := i
		g.Go(func() error {
			tasks, err := m.source.ListTasks(gctx, goals[i].ID)
			if err != nil {
				return err
			}
			taskLists[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tasksByGoal := make(map[uuid.UUID][]models.Task, len(goals))
	for i, goal := range goals {
		tasksByGoal[goal.ID] = taskLists[i]
	}

	return &Snapshot{
		Goals:       goals,
		TasksByGoal: tasksByGoal,
		FetchedAt:   m.now(),
	}, nil
}

// Snapshot returns the current snapshot, or an empty one before the first
// successful refresh.
func (m *Mirror) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return &Snapshot{TasksByGoal: map[uuid.UUID][]models.Task{}}
	}
	return m.snap
}

// Registry hands out one mirror per owner.
type Registry struct {
	source Source

	mu      sync.Mutex
	mirrors map[uuid.UUID]*Mirror
}

func NewRegistry(source Source) *Registry {
	return &Registry{
		source:  source,
		mirrors: make(map[uuid.UUID]*Mirror),
	}
}

func (r *Registry) ForOwner(ownerID uuid.UUID) *Mirror {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mirrors[ownerID]
	if !ok {
		m = New(r.source, ownerID)
		r.mirrors[ownerID] = m
	}
	return m
}
