package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"task-tracker/internal/domain"
	"task-tracker/internal/store"
)

var (
	ErrNotInitialized = errors.New("task store not initialized")
)

type TaskStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]domain.Task
}

var _ store.TaskStore = (*TaskStore)(nil)

func New() *TaskStore {
	return &TaskStore{
		tasks: make(map[int64]domain.Task),
	}
}

func (ts *TaskStore) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	id := atomic.AddInt64(&ts.nextID, 1)

	task.ID = id

	// completion is not definable by the caller on create
	task.Completed = false

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.tasks == nil {
		return domain.Task{}, ErrNotInitialized
	}
	ts.tasks[id] = task

	return task, nil
}

func (ts *TaskStore) Get(_ context.Context, id int64) (domain.Task, error) {
	ts.mu.RLock()
	task, ok := ts.tasks[id]
	ts.mu.RUnlock()

	if !ok {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, store.ErrNotFound)
	}

	// task is non-pointer value
	return task, nil
}

func (ts *TaskStore) List(_ context.Context) ([]domain.Task, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.tasks == nil {
		return nil, ErrNotInitialized
	}

	tasks := make([]domain.Task, 0, len(ts.tasks))
	for _, t := range ts.tasks {
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func (ts *TaskStore) Save(_ context.Context, task domain.Task) (domain.Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.tasks[task.ID]; !ok {
		return domain.Task{}, fmt.Errorf("save task %d: %w", task.ID, store.ErrNotFound)
	}
	ts.tasks[task.ID] = task

	return task, nil
}

func (ts *TaskStore) Delete(_ context.Context, id int64) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.tasks[id]; !ok {
		return fmt.Errorf("delete task %d: %w", id, store.ErrNotFound)
	}
	delete(ts.tasks, id)

	return nil
}

func (ts *TaskStore) Close() error { return nil }
