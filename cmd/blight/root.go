package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"blightcli/internal/config"
	"blightcli/internal/infrastructure"
	"blightcli/internal/validation"
)

// app holds what every command needs after configuration is loaded
type app struct {
	cfg     *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	metrics *infrastructure.RunMetrics
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Blight ticket compliance analysis",
		Long: `Blight explores the Detroit blight ticket extracts and prepares
the training and validation tables for compliance modelling.

Raw inputs (train.csv, addresses.csv, latlons.csv) are read from the raw
data directory. Settings come from an optional YAML file and BLIGHT_*
environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		prepareCmd(&configPath),
		describeCmd(&configPath),
		edaCmd(&configPath),
		watchCmd(&configPath),
		versionCmd(),
	)
	return cmd
}

// setup loads configuration, creates the output directories and starts
// the logger
func setup(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	paths, err := cfg.ResolvedPaths()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	if cfg.Logging.FilePath != "" && !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = filepath.Join(paths.LogsDir, filepath.Base(cfg.Logging.FilePath))
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	paths.LogPathResolution(logger)

	return &app{
		cfg:     cfg,
		paths:   paths,
		logger:  logger,
		metrics: infrastructure.NewRunMetrics(),
	}, nil
}

// close exports the run metrics and closes the log file
func (a *app) close(ctx context.Context) {
	if path := a.cfg.Metrics.TextfilePath; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.logger.ErrorContext(ctx, "Failed to write metrics",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}
	_ = infrastructure.CloseLogFile()
}

// preflight checks the raw extracts and that outDir accepts writes
func (a *app) preflight(outDir string) error {
	v := validation.NewFileValidator(a.logger)
	if err := v.ValidateRawInputs(a.paths); err != nil {
		return err
	}
	return v.ValidateOutputDirectory(outDir)
}
