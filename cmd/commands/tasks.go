package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"task-tracker/internal/service"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage tasks directly against the configured store",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all tasks",
				Action: withService(runTasksList),
			},
			{
				Name:      "add",
				Usage:     "Create a task",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Task description",
					},
				},
				Action: withService(runTasksAdd),
			},
			{
				Name:      "complete",
				Usage:     "Mark a task completed",
				ArgsUsage: "<task_id>",
				Action:    withService(runTasksComplete),
			},
			{
				Name:      "delete",
				Usage:     "Delete a task",
				ArgsUsage: "<task_id>",
				Action:    withService(runTasksDelete),
			},
		},
		DefaultCommand: "list",
	}
}

type serviceAction func(ctx context.Context, cmd *cli.Command, svc *service.TaskService) error

func withService(fn serviceAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Store.Driver == "memory" {
			slog.Warn("memory store is not persisted between runs")
		}

		store, err := openStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()

		svc, err := service.New(store)
		if err != nil {
			return err
		}
		return fn(ctx, cmd, svc)
	}
}

func runTasksList(ctx context.Context, cmd *cli.Command, svc *service.TaskService) error {
	list, err := svc.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	out := cmd.Root().Writer
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tDESCRIPTION")
	for _, t := range list {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, done, t.Title, t.Description)
	}
	return w.Flush()
}

func runTasksAdd(ctx context.Context, cmd *cli.Command, svc *service.TaskService) error {
	task, err := svc.CreateTask(ctx, cmd.Args().First(), cmd.String("description"))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Created task %d\n", task.ID)
	return nil
}

func runTasksComplete(ctx context.Context, cmd *cli.Command, svc *service.TaskService) error {
	id, err := taskIDArg(cmd)
	if err != nil {
		return err
	}
	if _, err := svc.CompleteTask(ctx, id); err != nil {
		return fmt.Errorf("complete task %d: %w", id, err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Completed task %d\n", id)
	return nil
}

func runTasksDelete(ctx context.Context, cmd *cli.Command, svc *service.TaskService) error {
	id, err := taskIDArg(cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	fmt.Fprintf(cmd.Root().Writer, "Deleted task %d\n", id)
	return nil
}

func taskIDArg(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("usage: tasks-app tasks %s <task_id>", cmd.Name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", service.ErrInvalidID, raw)
	}
	return id, nil
}
