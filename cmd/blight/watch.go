package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blightcli/internal/infrastructure"
	"blightcli/internal/watch"
)

func watchCmd(configPath *string) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run prepare, then again whenever a raw CSV is written",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer a.close(ctx)

			// Each run gets its own ID. A failed run is logged and the
			// watcher waits for the next change.
			run := func(ctx context.Context) error {
				return a.prepare(infrastructure.WithRunID(ctx, infrastructure.GenerateRunID()), nil)
			}
			if err := run(ctx); err != nil {
				a.logger.WarnContext(ctx, "Initial prepare failed, waiting for changes", slog.String("error", err.Error()))
			}

			w, err := watch.New(a.paths.RawDir, a.paths.RawInputs(), debounce, a.logger)
			if err != nil {
				return err
			}
			return w.Run(ctx, func(ctx context.Context, changed []string) error {
				a.logger.InfoContext(ctx, "Raw inputs changed", slog.Any("files", changed))
				return run(ctx)
			})
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a rerun")
	return cmd
}
