package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"unicode"

	"blightcli/internal/analysis"
	"blightcli/internal/config"
	"blightcli/internal/dataset"
	"blightcli/internal/exporter"
	"blightcli/internal/infrastructure"
	"blightcli/internal/visual"
	"blightcli/pkg/contracts/domain"
)

// Step IDs of the exploratory analysis pipeline. It starts with StepLoad.
const (
	StepDescribe    = "describe"
	StepCompliance  = "compliance"
	StepFrequencies = "frequencies"
	StepChecks      = "checks"
	StepReport      = "report"
)

// DescribedColumns are the raw columns summarized by the describe step
var DescribedColumns = []string{
	domain.ColAgencyName,
	domain.ColInspectorName,
	domain.ColViolatorName,
	domain.ColCity,
	domain.ColState,
	domain.ColZipCode,
	domain.ColCountry,
	domain.ColTicketIssuedDate,
	domain.ColHearingDate,
	domain.ColViolationCode,
	domain.ColCompliance,
}

// FrequencyColumns get a count spectrum and a frequency distribution chart
var FrequencyColumns = []string{
	domain.ColInspectorName,
	domain.ColViolationCode,
	domain.ColViolatorName,
	domain.ColCity,
	domain.ColState,
	domain.ColZipCode,
}

// DescribeStep adds the describe table of the raw columns
type DescribeStep struct {
	BaseStep
	columns []string
}

// NewDescribeStep creates the describe step
func NewDescribeStep(columns ...string) *DescribeStep {
	return &DescribeStep{BaseStep: NewBaseStep(StepDescribe, "Describe raw columns"), columns: columns}
}

// Execute describes state.Joined
func (s *DescribeStep) Execute(_ context.Context, state *State) error {
	summaries, err := analysis.DescribeAll(state.Joined, s.columns...)
	if err != nil {
		return err
	}
	state.AddTable(analysis.SummaryTable("Describe", summaries))
	return nil
}

// ComplianceStep summarizes compliance overall and per agency
type ComplianceStep struct {
	BaseStep
	paths *config.Paths
}

// NewComplianceStep creates the compliance step
func NewComplianceStep(paths *config.Paths) *ComplianceStep {
	return &ComplianceStep{BaseStep: NewBaseStep(StepCompliance, "Summarize compliance"), paths: paths}
}

// Execute adds the compliance, agency and agency by compliance tables with
// bar charts of the first two
func (s *ComplianceStep) Execute(_ context.Context, state *State) error {
	charts := []struct {
		column, title, file string
	}{
		{domain.ColCompliance, "Compliance", "compliance.png"},
		{domain.ColAgencyName, "Tickets by agency", "agency.png"},
	}
	for _, c := range charts {
		counts, err := analysis.CountBy(state.Joined, c.column)
		if err != nil {
			return err
		}
		state.AddTable(analysis.CountTable(c.title, c.column, counts))

		labels := make([]string, len(counts))
		for i, n := range counts {
			labels[i] = n.Value
		}
		path := s.paths.FigureFile(c.file)
		if err := visual.BarPlot(path, c.title, labels, analysis.CountValues(counts)); err != nil {
			return err
		}
		state.AddFigure(path)
	}

	cross, err := analysis.CrossCountBy(state.Joined, domain.ColAgencyName, domain.ColCompliance)
	if err != nil {
		return err
	}
	state.AddTable(analysis.CrossTable("Compliance by agency", domain.ColAgencyName, domain.ColCompliance, cross))
	return nil
}

// FrequencyStep adds the count spectrum, top values and a frequency
// distribution chart for each categorical column, plus the country counts
type FrequencyStep struct {
	BaseStep
	paths   *config.Paths
	columns []string
	topN    int
}

// NewFrequencyStep creates the frequency step
func NewFrequencyStep(paths *config.Paths, topN int, columns ...string) *FrequencyStep {
	return &FrequencyStep{
		BaseStep: NewBaseStep(StepFrequencies, "Frequency distributions"),
		paths:    paths,
		columns:  columns,
		topN:     topN,
	}
}

// Execute adds one spectrum table for all columns followed by the top
// values of each
func (s *FrequencyStep) Execute(ctx context.Context, state *State) error {
	spectra := make([]analysis.NumericSummary, 0, len(s.columns))
	var tops []analysis.Table

	for _, column := range s.columns {
		if err := ctx.Err(); err != nil {
			return err
		}
		counts, err := analysis.CountBy(state.Joined, column)
		if err != nil {
			return err
		}
		spectra = append(spectra, analysis.Spectrum(column, counts))
		tops = append(tops, analysis.CountTable("Top "+column, column, analysis.TopCounts(counts, s.topN)))

		path := s.paths.FigureFile(column + "_freq.png")
		title := fmt.Sprintf("Tickets per %s", column)
		if err := visual.FreqDist(path, title, analysis.CountValues(counts)); err != nil {
			return err
		}
		state.AddFigure(path)
	}

	state.AddTable(analysis.NumericTable("Count spectra", spectra))
	for _, t := range tops {
		state.AddTable(t)
	}

	countries, err := analysis.CountBy(state.Joined, domain.ColCountry)
	if err != nil {
		return err
	}
	state.AddTable(analysis.CountTable("Countries", domain.ColCountry, countries))
	return nil
}

// ChecksStep runs the hearing date and judgment amount checks
type ChecksStep struct {
	BaseStep
	paths  *config.Paths
	eda    config.EDAConfig
	logger *slog.Logger
}

// NewChecksStep creates the checks step
func NewChecksStep(paths *config.Paths, eda config.EDAConfig, logger *slog.Logger) *ChecksStep {
	return &ChecksStep{
		BaseStep: NewBaseStep(StepChecks, "Data quality checks"),
		paths:    paths,
		eda:      eda,
		logger:   infrastructure.WithComponent(logger, "pipeline"),
	}
}

// Execute adds a sample of the hearing date conflicts, the quality check
// counts and the judgment amount distribution with its histogram
func (s *ChecksStep) Execute(ctx context.Context, state *State) error {
	conflicts, err := analysis.HearingBeforeTicket(state.Joined)
	if err != nil {
		return err
	}
	zeros, err := analysis.ZeroJudgments(state.Joined)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Quality checks finished",
		slog.Int("hearing_before_ticket", len(conflicts)),
		slog.Int("zero_judgments", len(zeros)))

	rows := state.Joined.Nrow()
	state.AddTable(analysis.Table{
		Title:   "Quality checks",
		Headers: []string{"check", "rows", "percent"},
		Rows: [][]string{
			{"hearing_before_ticket", strconv.Itoa(len(conflicts)), percentOf(len(conflicts), rows)},
			{"zero_judgment_amount", strconv.Itoa(len(zeros)), percentOf(len(zeros), rows)},
		},
	})
	sample := analysis.SampleConflicts(conflicts, s.eda.SampleSize, s.eda.Seed)
	state.AddTable(analysis.ConflictTable("Hearing before ticket (sample)", sample))

	amounts, err := dataset.Floats(state.Joined, domain.ColJudgmentAmount)
	if err != nil {
		return err
	}
	state.AddTable(analysis.NumericTable("Judgment amount", []analysis.NumericSummary{
		analysis.Distribution(domain.ColJudgmentAmount, amounts),
	}))

	path := s.paths.FigureFile("judgment_amount.png")
	if err := visual.Histogram(path, "Judgment amount", amounts, s.eda.Bins); err != nil {
		return err
	}
	state.AddFigure(path)
	return nil
}

func percentOf(n, total int) string {
	if total == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(n)*100/float64(total), 'f', 2, 64)
}

// ReportStep prints the collected tables and writes them to the workbook
// and to one CSV file each
type ReportStep struct {
	BaseStep
	paths  *config.Paths
	writer *exporter.CSVWriter
	out    io.Writer
}

// NewReportStep creates the report step. out may be nil.
func NewReportStep(paths *config.Paths, writer *exporter.CSVWriter, out io.Writer) *ReportStep {
	return &ReportStep{
		BaseStep: NewBaseStep(StepReport, "Write EDA report"),
		paths:    paths,
		writer:   writer,
		out:      out,
	}
}

// Execute writes one sheet and one CSV file per table
func (s *ReportStep) Execute(_ context.Context, state *State) error {
	wb, err := exporter.NewWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	for _, t := range state.Tables {
		if s.out != nil {
			visual.Print(s.out, t)
		}
		if err := wb.AddTable(t); err != nil {
			return err
		}

		name := path.Join(config.EDATablesDir, TableFileName(t.Title))
		if err := s.writer.WriteTable(path.Join("reports", name), t); err != nil {
			return err
		}
		state.RecordWrite(s.paths.ReportFile(name), len(t.Rows))
	}

	workbook := s.paths.ReportFile(config.EDAWorkbookFileName)
	if err := wb.Save(workbook); err != nil {
		return err
	}
	state.RecordWrite(workbook, len(state.Tables))
	return nil
}

// TableFileName turns a table title into a CSV file name:
// "Hearing before ticket (sample)" becomes hearing_before_ticket_sample.csv
func TableFileName(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "table.csv"
	}
	return strings.Join(words, "_") + ".csv"
}

// EDAOptions wires the exploratory analysis pipeline
type EDAOptions struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.RunMetrics
	// Out receives the console tables. Nil skips printing.
	Out io.Writer
}

// NewEDA builds the load, describe, compliance, frequencies, checks and
// report pipeline
func NewEDA(opts EDAOptions) *Runner {
	sources := dataset.Sources{
		Tickets:   opts.Paths.TrainCSV,
		Addresses: opts.Paths.AddressesCSV,
		LatLons:   opts.Paths.LatLonsCSV,
	}
	eda := opts.Config.EDA

	return NewRunner(opts.Logger, opts.Metrics,
		NewLoadStep(dataset.NewLoader(opts.Logger, opts.Metrics), sources),
		NewDescribeStep(DescribedColumns...),
		NewComplianceStep(opts.Paths),
		NewFrequencyStep(opts.Paths, eda.TopN, FrequencyColumns...),
		NewChecksStep(opts.Paths, eda, opts.Logger),
		NewReportStep(opts.Paths, exporter.NewCSVWriter(opts.Paths, opts.Logger), opts.Out),
	)
}
