package features

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/config"
	"blightcli/internal/dataset"
	"blightcli/internal/infrastructure"
	"blightcli/pkg/contracts/domain"
)

// Options configures the Preprocessor
type Options struct {
	Impute    ImputeOptions
	LogOffset float64
	// KeepDates retains ticket_issued_date and hearing_date after decomposition.
	KeepDates bool
	// RateKeys are the grouping columns that receive compliance-rate features.
	RateKeys []string
}

// DefaultOptions returns the default preprocessing options
func DefaultOptions() Options {
	return Options{
		Impute:   DefaultImputeOptions(),
		RateKeys: append([]string(nil), config.DefaultRateKeys...),
	}
}

// OptionsFromConfig maps the features configuration section onto Options
func OptionsFromConfig(cfg config.FeaturesConfig) Options {
	opts := Options{
		Impute: ImputeOptions{
			Statistic: Statistic(cfg.ImputeStatistic),
			Policy:    WindowPolicy(cfg.WindowPolicy),
		},
		LogOffset: cfg.LogOffset,
		KeepDates: cfg.KeepDates,
		RateKeys:  append([]string(nil), cfg.RateKeys...),
	}
	if len(opts.RateKeys) == 0 {
		opts.RateKeys = append([]string(nil), config.DefaultRateKeys...)
	}
	return opts
}

// Report describes what a preprocessing run did
type Report struct {
	InputRows  int
	OutputRows int
	Impute     ImputeResult
	// Rates holds the per-group tallies for each rate key.
	Rates map[string][]GroupRate
}

// Preprocessor recodes, imputes and derives the model features of a
// selected training table
type Preprocessor struct {
	logger  *slog.Logger
	metrics *infrastructure.RunMetrics
	opts    Options
}

// NewPreprocessor creates a new preprocessor. metrics may be nil.
func NewPreprocessor(logger *slog.Logger, metrics *infrastructure.RunMetrics, opts Options) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{
		logger:  infrastructure.WithComponent(logger, "features"),
		metrics: metrics,
		opts:    opts,
	}
}

type stage struct {
	name string
	run  func(dataframe.DataFrame) (dataframe.DataFrame, error)
}

// Run applies the feature stages in order and stops at the first error.
func (p *Preprocessor) Run(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, Report, error) {
	report := Report{InputRows: df.Nrow(), Rates: make(map[string][]GroupRate)}

	stages := []stage{
		{"recode_agency", RecodeAgency},
		{"compliance_label", AddComplianceLabel},
		{"region", AddRegion},
		{"clean_city", CleanCity},
		{"residency_flags", AddResidencyFlags},
		{"clean_violator_name", CleanViolatorName},
		{"violation_history", AddViolationHistory},
		{"impute_hearing_dates", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			out, res, err := ImputeHearingDates(df, p.opts.Impute)
			report.Impute = res
			return out, err
		}},
		{"log_transforms", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			return AddLogTransforms(df, p.opts.LogOffset)
		}},
		{"decompose_dates", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			return DecomposeDates(df, !p.opts.KeepDates)
		}},
		{"cartesian", AddCartesian},
	}
	for _, key := range p.opts.RateKeys {
		key := key
		stages = append(stages, stage{"rate_" + key, func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
			out, rates, err := AddComplianceRate(df, key)
			report.Rates[key] = rates
			return out, err
		}})
	}
	stages = append(stages, stage{"drop_identifiers", func(df dataframe.DataFrame) (dataframe.DataFrame, error) {
		return dataset.Drop(df, domain.ColTicketID, domain.ColViolatorName), nil
	}})

	var err error
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return df, report, err
		}
		start := time.Now()
		before := df.Nrow()
		df, err = s.run(df)
		if err != nil {
			p.logger.ErrorContext(ctx, "Feature stage failed",
				slog.String("stage", s.name),
				slog.String("error", err.Error()))
			return df, report, fmt.Errorf("%s: %w", s.name, err)
		}
		p.logger.DebugContext(ctx, "Feature stage completed",
			slog.String("stage", s.name),
			slog.Int("rows_in", before),
			slog.Int("rows_out", df.Nrow()),
			slog.Int("columns", df.Ncol()),
			slog.Duration("duration", time.Since(start)))
	}

	p.metrics.RowsImputed(report.Impute.Imputed)
	p.metrics.RowsDropped(ReasonNegativeWindow, report.Impute.Dropped)

	report.OutputRows = df.Nrow()
	p.logger.InfoContext(ctx, "Preprocessing completed",
		slog.Int("rows_in", report.InputRows),
		slog.Int("rows_out", report.OutputRows),
		slog.Int("columns", df.Ncol()),
		slog.Int("hearing_dates_imputed", report.Impute.Imputed),
		slog.Int("negative_windows_dropped", report.Impute.Dropped),
		slog.Int("negative_windows_shifted", report.Impute.Shifted),
		slog.Float64("imputed_window_days", report.Impute.Window))

	return df, report, nil
}
