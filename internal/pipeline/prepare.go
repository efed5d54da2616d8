package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/analysis"
	"blightcli/internal/config"
	"blightcli/internal/dataset"
	"blightcli/internal/exporter"
	"blightcli/internal/features"
	"blightcli/internal/infrastructure"
	"blightcli/internal/visual"
)

// Step IDs of the prepare pipeline
const (
	StepLoad       = "load"
	StepSummarize  = "summarize"
	StepSplit      = "split"
	StepSelect     = "select"
	StepPreprocess = "preprocess"
	StepWrite      = "write"
)

// LoadStep reads and joins the raw inputs
type LoadStep struct {
	BaseStep
	loader  *dataset.Loader
	sources dataset.Sources
}

// NewLoadStep creates the load step
func NewLoadStep(loader *dataset.Loader, sources dataset.Sources) *LoadStep {
	return &LoadStep{BaseStep: NewBaseStep(StepLoad, "Load raw data"), loader: loader, sources: sources}
}

// Execute loads the joined table into state
func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	df, err := s.loader.Load(ctx, s.sources)
	if err != nil {
		return err
	}
	state.Joined = df
	return nil
}

// SummarizeStep logs the qualitative and quantitative summaries of the
// joined table and prints them when out is set
type SummarizeStep struct {
	BaseStep
	logger *slog.Logger
	out    io.Writer
}

// NewSummarizeStep creates the summarize step. out may be nil.
func NewSummarizeStep(logger *slog.Logger, out io.Writer) *SummarizeStep {
	return &SummarizeStep{
		BaseStep: NewBaseStep(StepSummarize, "Summarize raw data"),
		logger:   infrastructure.WithComponent(logger, "pipeline"),
		out:      out,
	}
}

// Execute summarizes state.Joined
func (s *SummarizeStep) Execute(ctx context.Context, state *State) error {
	qual, quant, err := analysis.SummarizeFrame(state.Joined)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Raw data summarized",
		slog.Int("rows", state.Joined.Nrow()),
		slog.Int("qualitative_columns", len(qual)),
		slog.Int("quantitative_columns", len(quant)))

	if s.out != nil {
		visual.Print(s.out, analysis.SummaryTable("Qualitative", qual))
		visual.Print(s.out, analysis.NumericTable("Quantitative", quant))
	}
	return nil
}

// SplitStep divides the joined table on the ticket issue date
type SplitStep struct {
	BaseStep
	boundary time.Time
}

// NewSplitStep creates the split step
func NewSplitStep(boundary time.Time) *SplitStep {
	return &SplitStep{BaseStep: NewBaseStep(StepSplit, "Split train and validation"), boundary: boundary}
}

// Execute sets state.Train and state.Validation
func (s *SplitStep) Execute(_ context.Context, state *State) error {
	train, validation, err := features.Split(state.Joined, s.boundary)
	if err != nil {
		return err
	}
	state.Train, state.Validation = train, validation
	return nil
}

// SelectStep filters the training rows and keeps the modelling columns
type SelectStep struct {
	BaseStep
	metrics *infrastructure.RunMetrics
}

// NewSelectStep creates the select step
func NewSelectStep(metrics *infrastructure.RunMetrics) *SelectStep {
	return &SelectStep{BaseStep: NewBaseStep(StepSelect, "Select training rows"), metrics: metrics}
}

// Execute replaces state.Train with the selected rows
func (s *SelectStep) Execute(_ context.Context, state *State) error {
	df, res, err := features.Select(state.Train, true)
	if err != nil {
		return err
	}
	reasons := make([]string, 0, len(res.Dropped))
	for reason := range res.Dropped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		s.metrics.RowsDropped(reason, res.Dropped[reason])
	}
	state.Train, state.Selection = df, res
	return nil
}

// PreprocessStep derives the model features of the training rows
type PreprocessStep struct {
	BaseStep
	preprocessor *features.Preprocessor
}

// NewPreprocessStep creates the preprocess step
func NewPreprocessStep(p *features.Preprocessor) *PreprocessStep {
	return &PreprocessStep{BaseStep: NewBaseStep(StepPreprocess, "Engineer features"), preprocessor: p}
}

// Execute replaces state.Train with the feature table
func (s *PreprocessStep) Execute(ctx context.Context, state *State) error {
	df, report, err := s.preprocessor.Run(ctx, state.Train)
	if err != nil {
		return err
	}
	state.Train, state.Report = df, report
	return nil
}

// WriteStep writes the processed training and validation files and,
// optionally, one compliance-rate table per rate key
type WriteStep struct {
	BaseStep
	writer     *exporter.CSVWriter
	paths      *config.Paths
	metrics    *infrastructure.RunMetrics
	rateTables bool
}

// NewWriteStep creates the write step
func NewWriteStep(writer *exporter.CSVWriter, paths *config.Paths, metrics *infrastructure.RunMetrics, rateTables bool) *WriteStep {
	return &WriteStep{
		BaseStep:   NewBaseStep(StepWrite, "Write processed data"),
		writer:     writer,
		paths:      paths,
		metrics:    metrics,
		rateTables: rateTables,
	}
}

// Execute writes the outputs and records the row counts
func (s *WriteStep) Execute(ctx context.Context, state *State) error {
	outputs := []struct {
		path string
		df   dataframe.DataFrame
	}{
		{s.paths.ProcessedTrainCSV, state.Train},
		{s.paths.ProcessedValidationCSV, state.Validation},
	}
	for _, out := range outputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := s.writer.WriteFrame(out.path, out.df)
		if err != nil {
			return err
		}
		s.metrics.RowsWritten(filepath.Base(out.path), n)
		state.RecordWrite(out.path, n)
	}

	if !s.rateTables {
		return nil
	}
	keys := make([]string, 0, len(state.Report.Rates))
	for key := range state.Report.Rates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		path := s.paths.ReportFile(filepath.Join("rates", key+".csv"))
		n, err := s.writer.WriteFrame(path, features.RateFrame(key, state.Report.Rates[key]))
		if err != nil {
			return fmt.Errorf("rate table %s: %w", key, err)
		}
		state.RecordWrite(path, n)
	}
	return nil
}

// PrepareOptions wires the prepare pipeline
type PrepareOptions struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.RunMetrics
	// Summary receives the raw data summary tables. Nil skips printing.
	Summary io.Writer
}

// NewPrepare builds the load, summarize, split, select, preprocess and
// write pipeline from configuration
func NewPrepare(opts PrepareOptions) (*Runner, error) {
	boundary, err := features.ParseBoundary(opts.Config.Features.SplitDate)
	if err != nil {
		return nil, err
	}

	sources := dataset.Sources{
		Tickets:   opts.Paths.TrainCSV,
		Addresses: opts.Paths.AddressesCSV,
		LatLons:   opts.Paths.LatLonsCSV,
	}
	preprocessor := features.NewPreprocessor(opts.Logger, opts.Metrics, features.OptionsFromConfig(opts.Config.Features))
	writer := exporter.NewCSVWriter(opts.Paths, opts.Logger)

	return NewRunner(opts.Logger, opts.Metrics,
		NewLoadStep(dataset.NewLoader(opts.Logger, opts.Metrics), sources),
		NewSummarizeStep(opts.Logger, opts.Summary),
		NewSplitStep(boundary),
		NewSelectStep(opts.Metrics),
		NewPreprocessStep(preprocessor),
		NewWriteStep(writer, opts.Paths, opts.Metrics, opts.Config.Features.WriteRateTables),
	), nil
}
