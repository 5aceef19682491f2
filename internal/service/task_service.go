package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"task-tracker/internal/domain"
	"task-tracker/internal/store"
)

type TaskStore interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (domain.Task, error)
	Save(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type TaskService struct {
	store TaskStore
}

func New(store TaskStore) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	return &TaskService{store: store}, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.store.List(ctx)
}

// CreateTask stores title and description as given. Nothing is validated;
// an empty title is only logged.
func (s *TaskService) CreateTask(ctx context.Context, title, description string) (domain.Task, error) {
	if title == "" {
		slog.Warn("creating task without title", "description_len", len(description))
	}

	created, err := s.store.Create(ctx, domain.Task{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	slog.Debug("task created", "id", created.ID)
	return created, nil
}

// CompleteTask marks the task done. Completing an already completed task is
// allowed and writes again.
func (s *TaskService) CompleteTask(ctx context.Context, id int64) (domain.Task, error) {
	task, err := s.lookup(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	task.Completed = true
	saved, err := s.store.Save(ctx, task)
	if err != nil {
		return domain.Task{}, translate(err)
	}

	slog.Debug("task completed", "id", id)
	return saved, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	task, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, task.ID); err != nil {
		return translate(err)
	}

	slog.Debug("task deleted", "id", id)
	return nil
}

func (s *TaskService) lookup(ctx context.Context, id int64) (domain.Task, error) {
	if id <= 0 {
		return domain.Task{}, ErrInvalidID
	}

	task, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Task{}, translate(err)
	}
	return task, nil
}

// translate maps store.ErrNotFound onto ErrNotFound, keeping the original
// error in the chain.
func translate(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
