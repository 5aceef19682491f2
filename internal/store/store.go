package store

import (
	"context"
	"errors"
	"task-tracker/internal/domain"
)

var ErrNotFound = errors.New("task not found")

// TaskStore is the persistence collaborator for tasks. Lookups by id that
// match nothing return an error wrapping ErrNotFound.
type TaskStore interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (domain.Task, error)
	Save(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
