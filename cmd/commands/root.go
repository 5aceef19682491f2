package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"task-tracker/internal/config"
	"task-tracker/internal/store"
	"task-tracker/internal/store/memory"
	"task-tracker/internal/store/sqlstore"

	"github.com/urfave/cli/v3"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks-app",
		Usage: "A small task tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a JSONC config file",
				Value:   "config.jsonc",
				Sources: cli.EnvVars("TASKS_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Store driver: memory, sqlite, postgres or mysql",
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "Store data source name",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewTasksCommand(),
			NewMigrateCommand(),
		},
		DefaultCommand: "serve",
	}
}

// loadConfig reads the config file and lets CLI flags override it, then
// installs the default slog logger.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if cmd.IsSet("driver") {
		cfg.Store.Driver = cmd.String("driver")
	}
	if cmd.IsSet("dsn") {
		cfg.Store.DSN = cmd.String("dsn")
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
	return cfg, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.TaskStore, error) {
	if cfg.Driver == "memory" {
		return memory.New(), nil
	}

	s, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
