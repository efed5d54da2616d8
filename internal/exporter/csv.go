package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"blightcli/internal/analysis"
	"blightcli/internal/config"
	"blightcli/internal/dataset"
	apperrors "blightcli/internal/errors"
)

// CSVWriter writes tables as plain comma-separated files with a header row
// and no index column
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger.With(slog.String("component", "exporter"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteCSV replaces filePath with the header row and records
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create %s", fullPath), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to flush %s", fullPath), err)
	}
	return nil
}

// WriteFrame replaces filePath with df, streaming one row at a time.
// Missing cells are written empty. It returns the number of data rows
// written.
func (w *CSVWriter) WriteFrame(filePath string, df dataframe.DataFrame) (int, error) {
	if df.Err != nil {
		return 0, df.Err
	}
	stream, err := w.CreateStreamWriter(filePath, df.Names())
	if err != nil {
		return 0, err
	}

	n := 0
	err = dataset.EachRecord(df, func(row []string) error {
		if werr := stream.WriteRecord(row); werr != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", n), werr)
		}
		n++
		return nil
	})
	if cerr := stream.Close(); err == nil && cerr != nil {
		err = apperrors.NewStorageError(fmt.Sprintf("failed to close %s", filePath), cerr)
	}
	if err != nil {
		return n, err
	}

	w.logger.Info("Wrote CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", n),
		slog.Int("column_count", df.Ncol()))
	return n, nil
}

// WriteTable replaces filePath with an analysis table, its headers as the
// header row
func (w *CSVWriter) WriteTable(filePath string, t analysis.Table) error {
	return w.WriteCSV(filePath, WriteOptions{Headers: t.Headers, Records: t.Rows})
}

// StreamWriter writes records one at a time
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter truncates filePath and writes the header row
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to create %s", fullPath), err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write headers", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath maps a relative path into the data tree. Paths under
// "reports/" go to the reports directory, everything else to the
// processed directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	if rest, ok := strings.CutPrefix(filepath.ToSlash(filePath), "reports/"); ok {
		return w.paths.ReportFile(rest)
	}
	return w.paths.ProcessedFile(filePath)
}
