package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations.
type Paths struct {
	Root         string
	RawDir       string
	ProcessedDir string
	ReportsDir   string
	FiguresDir   string
	LogsDir      string

	// Raw inputs
	TrainCSV     string
	AddressesCSV string
	LatLonsCSV   string

	// Processed outputs
	ProcessedTrainCSV      string
	ProcessedValidationCSV string
}

// NewPaths resolves the configured directories. Relative directories are
// joined to the root, and a relative root is made absolute against the
// current working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	root := cfg.Root
	if root == "" {
		root = DefaultRoot
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", cfg.Root, err)
	}

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir)
		}
		return filepath.Join(root, dir)
	}

	p := &Paths{
		Root:         root,
		RawDir:       resolve(cfg.RawDir, DefaultRawDir),
		ProcessedDir: resolve(cfg.ProcessedDir, DefaultProcessedDir),
		ReportsDir:   resolve(cfg.ReportsDir, DefaultReportsDir),
		FiguresDir:   resolve(cfg.FiguresDir, DefaultFiguresDir),
		LogsDir:      resolve(cfg.LogsDir, DefaultLogsDir),
	}

	p.TrainCSV = p.RawFile(TrainFileName)
	p.AddressesCSV = p.RawFile(AddressesFileName)
	p.LatLonsCSV = p.RawFile(LatLonsFileName)
	p.ProcessedTrainCSV = p.ProcessedFile(ProcessedTrainFileName)
	p.ProcessedValidationCSV = p.ProcessedFile(ProcessedValidationFileName)

	return p, nil
}

// RawFile returns the path of a file in the raw data directory
func (p *Paths) RawFile(name string) string {
	return filepath.Join(p.RawDir, name)
}

// ProcessedFile returns the path of a file in the processed data directory
func (p *Paths) ProcessedFile(name string) string {
	return filepath.Join(p.ProcessedDir, name)
}

// ReportFile returns the path of a file in the reports directory
func (p *Paths) ReportFile(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// FigureFile returns the path of a file in the figures directory
func (p *Paths) FigureFile(name string) string {
	return filepath.Join(p.FiguresDir, name)
}

// RawInputs lists the raw CSV files a run reads
func (p *Paths) RawInputs() []string {
	return []string{p.TrainCSV, p.AddressesCSV, p.LatLonsCSV}
}

// EnsureDirectories creates every output directory. The raw directory is
// input only and is not created.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ProcessedDir,
		p.ReportsDir,
		p.FiguresDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// LogPathResolution logs all resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution",
		slog.String("root", p.Root),
		slog.String("raw_dir", p.RawDir),
		slog.String("processed_dir", p.ProcessedDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("figures_dir", p.FiguresDir),
		slog.String("logs_dir", p.LogsDir))
}
