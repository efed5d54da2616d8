package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"blightcli/internal/infrastructure"
	"blightcli/internal/pipeline"
)

func edaCmd(configPath *string) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Run the initial data analysis and write the figures and workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configPath)
			if err != nil {
				return err
			}
			ctx := infrastructure.EnsureRunID(cmd.Context())
			defer a.close(ctx)

			if err := a.preflight(a.paths.FiguresDir); err != nil {
				return err
			}

			opts := pipeline.EDAOptions{Config: a.cfg, Paths: a.paths, Logger: a.logger, Metrics: a.metrics}
			if !quiet {
				opts.Out = cmd.OutOrStdout()
			}

			state := pipeline.NewState(infrastructure.GetRunID(ctx))
			if err := pipeline.NewEDA(opts).Run(ctx, state); err != nil {
				a.logger.ErrorContext(ctx, "EDA failed", slog.String("error", err.Error()))
				return err
			}
			a.logger.InfoContext(ctx, "EDA completed",
				slog.Int("tables", len(state.Tables)),
				slog.Int("figures", len(state.Figures)),
				slog.String("figures_dir", a.paths.FiguresDir))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip the console tables")
	return cmd
}
