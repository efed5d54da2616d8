package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "blightcli/internal/errors"
	"blightcli/internal/infrastructure"
	"blightcli/pkg/contracts/domain"
)

// Sources names the three raw extracts
type Sources struct {
	Tickets   string
	Addresses string
	LatLons   string
}

// Loader reads and joins the raw extracts
type Loader struct {
	logger  *slog.Logger
	metrics *infrastructure.RunMetrics
}

// NewLoader creates a new loader. metrics may be nil.
func NewLoader(logger *slog.Logger, metrics *infrastructure.RunMetrics) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  infrastructure.WithComponent(logger, "dataset"),
		metrics: metrics,
	}
}

// Load reads the three extracts concurrently and joins tickets to
// addresses on ticket_id, then to coordinates on address. Tickets without
// a match on either side are dropped.
func (l *Loader) Load(ctx context.Context, src Sources) (dataframe.DataFrame, error) {
	start := time.Now()

	var tickets, addresses, latlons dataframe.DataFrame
	g, gctx := errgroup.WithContext(ctx)
	read := func(path string, dst *dataframe.DataFrame) func() error {
		return func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			df, err := ReadCSV(path)
			if err != nil {
				return err
			}
			l.metrics.RowsRead(filepath.Base(path), df.Nrow())
			l.logger.DebugContext(gctx, "Read raw file",
				slog.String("path", path),
				slog.Int("rows", df.Nrow()),
				slog.Int("columns", df.Ncol()))
			*dst = df
			return nil
		}
	}
	g.Go(read(src.Tickets, &tickets))
	g.Go(read(src.Addresses, &addresses))
	g.Go(read(src.LatLons, &latlons))
	if err := g.Wait(); err != nil {
		return dataframe.DataFrame{}, err
	}

	joined, err := InnerJoin(tickets, addresses, domain.ColTicketID)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("join tickets to addresses: %w", err)
	}
	joined, err = InnerJoin(joined, latlons, domain.ColAddress)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("join addresses to coordinates: %w", err)
	}

	l.logger.InfoContext(ctx, "Loaded raw tickets",
		slog.Int("tickets", tickets.Nrow()),
		slog.Int("joined_rows", joined.Nrow()),
		slog.Int("columns", joined.Ncol()),
		slog.Duration("duration", time.Since(start)))

	return joined, nil
}

// ReadCSV reads an ISO-8859-1 encoded CSV file with a header row. Every
// column is loaded as strings; typing happens where a column is used.
func ReadCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError(path)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	df, err := ReadFrame(f)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", path, err)
	}
	return df, nil
}

// ReadFrame decodes Latin-1 CSV from r into a string-typed frame
func ReadFrame(r io.Reader) (dataframe.DataFrame, error) {
	reader := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("malformed csv", err)
	}
	return FromRecords(records)
}

// FromRecords builds a string-typed frame from a header row and data rows
func FromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError("csv has no header row", nil)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}
	if len(records) == 1 {
		cols := make([]series.Series, len(header))
		for i, name := range header {
			cols[i] = StringSeries(name, []string{})
		}
		return dataframe.New(cols...), nil
	}

	rows := make([][]string, 0, len(records))
	rows = append(rows, header)
	rows = append(rows, records[1:]...)
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("failed to load csv records", df.Err)
	}
	return df, nil
}
