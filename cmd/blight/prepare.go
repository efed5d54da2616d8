package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"blightcli/internal/infrastructure"
	"blightcli/internal/pipeline"
)

func prepareCmd(configPath *string) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build the processed train and validation tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			ctx := infrastructure.EnsureRunID(cmd.Context())
			defer a.close(ctx)

			if err := a.preflight(a.paths.ProcessedDir); err != nil {
				return err
			}

			var out io.Writer
			if summary {
				out = cmd.OutOrStdout()
			}
			return a.prepare(ctx, out)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the raw data summary tables")
	return cmd
}

// prepare runs the prepare pipeline once under the run ID carried by ctx
func (a *app) prepare(ctx context.Context, summary io.Writer) error {
	runner, err := pipeline.NewPrepare(pipeline.PrepareOptions{
		Config:  a.cfg,
		Paths:   a.paths,
		Logger:  a.logger,
		Metrics: a.metrics,
		Summary: summary,
	})
	if err != nil {
		return err
	}

	state := pipeline.NewState(infrastructure.GetRunID(ctx))
	if err := runner.Run(ctx, state); err != nil {
		a.logger.ErrorContext(ctx, "Prepare failed", slog.String("error", err.Error()))
		return err
	}

	a.logger.InfoContext(ctx, "Prepare completed",
		slog.Int("train_rows", state.Written[a.paths.ProcessedTrainCSV]),
		slog.Int("validation_rows", state.Written[a.paths.ProcessedValidationCSV]),
		slog.Duration("duration", time.Since(state.StartTime)))
	return nil
}
