package tasks

import (
	"context"
	"sync"
	"time"

	"lifeos/types"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu    sync.Mutex
	tasks map[string]types.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: map[string]types.Task{}}
}

// Seed inserts a task as-is, bypassing Create defaults. Test helper.
func (s *MemoryStore) Seed(task types.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task
}

// Get returns a copy of a stored task. Test helper.
func (s *MemoryStore) Get(id string) (types.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	return task, ok
}

func (s *MemoryStore) FindCandidates(_ context.Context) ([]types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []types.Task

	for _, task := range s.tasks {
		if task.Completed || task.Notified || !task.ReminderEnabled() {
			continue
		}

		candidates = append(candidates, task)
	}

	return candidates, nil
}

func (s *MemoryStore) MarkNotified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]

	if !ok {
		return nil
	}

	task.Notified = true
	s.tasks[id] = task

	return nil
}

func (s *MemoryStore) Create(_ context.Context, req types.CreateTask) (*types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := types.Task{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Date:           req.Date,
		StartTime:      req.StartTime,
		ReminderOffset: req.ReminderOffset,
		CreatedAt:      time.Now(),
	}

	s.tasks[task.ID] = task

	return &task, nil
}

func (s *MemoryStore) List(_ context.Context) ([]types.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]types.Task, 0, len(s.tasks))

	for _, task := range s.tasks {
		list = append(list, task)
	}

	slices.SortFunc(list, func(a, b types.Task) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}

		if a.StartTime < b.StartTime {
			return -1
		} else if a.StartTime > b.StartTime {
			return 1
		}

		return 0
	})

	return list, nil
}

func (s *MemoryStore) SetCompleted(_ context.Context, id string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]

	if !ok {
		return ErrNotFound
	}

	task.Completed = completed
	s.tasks[id] = task

	return nil
}
