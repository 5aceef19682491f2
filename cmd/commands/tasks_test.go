package commands

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"task-tracker/internal/service"
	"testing"
)

// runCLI runs the root command against a sqlite file shared across calls.
func runCLI(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.Writer = &out
	root.ErrWriter = &out

	full := append([]string{
		"tasks-app",
		"--config", filepath.Join(t.TempDir(), "missing.jsonc"),
		"--driver", "sqlite",
		"--dsn", dsn,
	}, args...)

	err := root.Run(context.Background(), full)
	return out.String(), err
}

func TestTasksCommand_Lifecycle(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")

	out, err := runCLI(t, dsn, "tasks", "list")
	if err != nil {
		t.Fatalf("list err = %v", err)
	}
	if !strings.Contains(out, "No tasks found.") {
		t.Fatalf("list out = %q, want empty message", out)
	}

	out, err = runCLI(t, dsn, "tasks", "add", "--description", "2%", "Buy milk")
	if err != nil {
		t.Fatalf("add err = %v", err)
	}
	if !strings.Contains(out, "Created task 1") {
		t.Fatalf("add out = %q, want Created task 1", out)
	}

	out, _ = runCLI(t, dsn, "tasks", "list")
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "2%") {
		t.Fatalf("list out = %q, want the new task", out)
	}

	if _, err := runCLI(t, dsn, "tasks", "complete", "1"); err != nil {
		t.Fatalf("complete err = %v", err)
	}
	if _, err := runCLI(t, dsn, "tasks", "delete", "1"); err != nil {
		t.Fatalf("delete err = %v", err)
	}

	_, err = runCLI(t, dsn, "tasks", "delete", "1")
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("second delete err = %v, want %v", err, service.ErrNotFound)
	}
}

func TestTasksCommand_BadID(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")

	_, err := runCLI(t, dsn, "tasks", "complete", "one")
	if !errors.Is(err, service.ErrInvalidID) {
		t.Fatalf("complete err = %v, want %v", err, service.ErrInvalidID)
	}

	if _, err := runCLI(t, dsn, "tasks", "delete"); err == nil {
		t.Fatal("delete without id err = nil, want usage error")
	}
}

func TestMigrateCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "tasks.db")

	if _, err := runCLI(t, dsn, "migrate"); err != nil {
		t.Fatalf("migrate err = %v", err)
	}
	if _, err := runCLI(t, dsn, "migrate"); err != nil {
		t.Fatalf("second migrate err = %v", err)
	}
}
