package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"task-tracker/internal/domain"
	"task-tracker/internal/store"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store is a TaskStore backed by a single SQL table.
type Store struct {
	db      *sql.DB
	dialect dialect
}

var _ store.TaskStore = (*Store)(nil)

// Open connects to the database named by driver (sqlite, postgres or mysql)
// and runs the schema migration.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}
	if d.singleConn {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}

	s := &Store{db: db, dialect: d}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Debug("sql task store ready", "driver", d.driver)
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the tasks table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createDDL); err != nil {
		return fmt.Errorf("migrate tasks table: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.Completed = false

	const q = `INSERT INTO tasks (title, description, completed) VALUES (?, ?, ?)`

	if s.dialect.returning {
		err := s.db.QueryRowContext(ctx, s.dialect.rebind(q+` RETURNING id`),
			task.Title, task.Description, task.Completed).Scan(&task.ID)
		if err != nil {
			return domain.Task{}, fmt.Errorf("insert task: %w", err)
		}
		return task, nil
	}

	res, err := s.db.ExecContext(ctx, s.dialect.rebind(q), task.Title, task.Description, task.Completed)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task id: %w", err)
	}
	task.ID = id

	return task, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, completed FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Task, error) {
	var t domain.Task
	err := s.db.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT id, title, description, completed FROM tasks WHERE id = ?`), id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	res, err := s.db.ExecContext(ctx,
		s.dialect.rebind(`UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?`),
		task.Title, task.Description, task.Completed, task.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("save task %d: %w", task.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, fmt.Errorf("save task %d: %w", task.ID, err)
	}
	if n == 0 {
		// mysql reports 0 affected rows when the values did not change
		if _, err := s.Get(ctx, task.ID); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete task %d: %w", id, store.ErrNotFound)
	}

	return nil
}
