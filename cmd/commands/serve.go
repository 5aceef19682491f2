package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"task-tracker/internal/http/handlers"
	"task-tracker/internal/http/render"
	"task-tracker/internal/service"

	"github.com/urfave/cli/v3"

	router "task-tracker/internal/http"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("addr") {
		cfg.HTTP.Addr = cmd.String("addr")
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := service.New(store)
	if err != nil {
		return fmt.Errorf("service initiation failed: %w", err)
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router.New(handlers.New(svc, renderer)),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTP.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shut down signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Std())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("shut down gracefully")
	return nil
}
