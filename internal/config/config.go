package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "blightcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Features FeaturesConfig `yaml:"features" envconfig:"FEATURES"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
	EDA      EDAConfig      `yaml:"eda" envconfig:"EDA"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration. Relative
// directories are resolved against Root.
type PathsConfig struct {
	Root         string `yaml:"root" envconfig:"ROOT" validate:"required"`
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR" validate:"required"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR" validate:"required"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	FiguresDir   string `yaml:"figures_dir" envconfig:"FIGURES_DIR" validate:"required"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// FeaturesConfig controls the feature engineering stage
type FeaturesConfig struct {
	// SplitDate is the first ticket-issued day that belongs to the
	// validation set.
	SplitDate string `yaml:"split_date" envconfig:"SPLIT_DATE" validate:"required,datetime=2006-01-02"`
	// ImputeStatistic selects the central tendency used for missing hearing dates.
	ImputeStatistic string `yaml:"impute_statistic" envconfig:"IMPUTE_STATISTIC" validate:"oneof=mean median"`
	// WindowPolicy handles hearings on or before the ticket date.
	WindowPolicy string  `yaml:"window_policy" envconfig:"WINDOW_POLICY" validate:"oneof=drop shift"`
	LogOffset    float64 `yaml:"log_offset" envconfig:"LOG_OFFSET" validate:"gte=0"`
	KeepDates    bool    `yaml:"keep_dates" envconfig:"KEEP_DATES"`
	// RateKeys lists the columns that receive compliance-rate features.
	RateKeys []string `yaml:"rate_keys" envconfig:"RATE_KEYS" validate:"dive,required"`
	// WriteRateTables writes one CSV per rate key to the reports directory.
	WriteRateTables bool `yaml:"write_rate_tables" envconfig:"WRITE_RATE_TABLES"`
}

// MetricsConfig contains batch metrics configuration
type MetricsConfig struct {
	// TextfilePath receives the run metrics in Prometheus text format.
	// Empty disables the export.
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// EDAConfig controls the exploratory analysis command
type EDAConfig struct {
	Bins       int   `yaml:"bins" envconfig:"BINS" validate:"min=1"`
	SampleSize int   `yaml:"sample_size" envconfig:"SAMPLE_SIZE" validate:"gte=0"`
	Seed       int64 `yaml:"seed" envconfig:"SEED"`
	TopN       int   `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/blight.log",
		},
		Paths: PathsConfig{
			Root:         DefaultRoot,
			RawDir:       DefaultRawDir,
			ProcessedDir: DefaultProcessedDir,
			ReportsDir:   DefaultReportsDir,
			FiguresDir:   DefaultFiguresDir,
			LogsDir:      DefaultLogsDir,
		},
		Features: FeaturesConfig{
			SplitDate:       DefaultSplitDate,
			ImputeStatistic: "mean",
			WindowPolicy:    "drop",
			LogOffset:       0,
			RateKeys:        append([]string(nil), DefaultRateKeys...),
		},
		EDA: EDAConfig{
			Bins:       DefaultHistogramBins,
			SampleSize: DefaultSampleSize,
			Seed:       DefaultSeed,
			TopN:       DefaultTopN,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and BLIGHT_* environment variables, in increasing precedence. A path
// given explicitly or through BLIGHT_CONFIG must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("config file " + path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable keep their current value.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// ResolvedPaths returns the absolute directory layout for this configuration
func (c *Config) ResolvedPaths() (*Paths, error) {
	return NewPaths(c.Paths)
}
