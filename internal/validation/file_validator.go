package validation

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"blightcli/internal/config"
	apperrors "blightcli/internal/errors"
	"blightcli/internal/infrastructure"
	"blightcli/pkg/contracts/domain"
)

// RequiredColumns lists the header columns each raw extract must carry.
// The train.csv list covers every column the prepare and eda commands read.
var RequiredColumns = map[string][]string{
	config.TrainFileName: {
		domain.ColTicketID,
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
		domain.ColJudgmentAmount,
		domain.ColCompliance,
	},
	config.AddressesFileName: {domain.ColTicketID, domain.ColAddress},
	config.LatLonsFileName:   {domain.ColAddress, domain.ColLat, domain.ColLon},
}

// FileValidator checks inputs and output directories before a run starts
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	return &FileValidator{logger: infrastructure.WithComponent(logger, "validation")}
}

// ValidateRawInputs checks that the three raw extracts exist and carry
// their required columns
func (v *FileValidator) ValidateRawInputs(paths *config.Paths) error {
	for _, path := range paths.RawInputs() {
		if err := v.ValidateCSVFile(path, RequiredColumns[filepath.Base(path)]...); err != nil {
			return err
		}
	}
	v.logger.Info("Raw inputs validated", slog.String("directory", paths.RawDir))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError(path)
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile checks the extension and header row of a Latin-1 CSV
// file. Only the header is read.
func (v *FileValidator) ValidateCSVFile(path string, required ...string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		return apperrors.NewValidationError(fmt.Sprintf("file %s is not a CSV file (extension: %s)", path, ext))
	}

	header, err := readHeader(path)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = true
	}
	for _, column := range required {
		if !present[column] {
			v.logger.Error("Required column missing",
				slog.String("file", path),
				slog.String("column", column))
			return apperrors.MissingColumn(column).WithContext("file", path)
		}
	}
	return nil
}

func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.LazyQuotes = true
	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s has no readable header row", path), err)
	}
	return header, nil
}
