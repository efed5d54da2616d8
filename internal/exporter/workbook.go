package exporter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"blightcli/internal/analysis"
	apperrors "blightcli/internal/errors"
)

const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// Workbook collects analysis tables, one sheet each
type Workbook struct {
	file   *excelize.File
	header int
	sheets []string
}

// NewWorkbook creates an empty workbook
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, apperrors.NewStorageError("failed to create header style", err)
	}
	return &Workbook{file: f, header: header}, nil
}

// Sheets returns the sheet names in insertion order
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// AddTable writes t to a new sheet named after its title. Cells that look
// like numbers are stored as numbers.
func (w *Workbook) AddTable(t analysis.Table) error {
	name := w.sheetName(t.Title)
	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return apperrors.NewStorageError("failed to name sheet", err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to add sheet %q", name), err)
	}
	w.sheets = append(w.sheets, name)

	for i, h := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.file.SetCellValue(name, cell, h); err != nil {
			return apperrors.NewStorageError("failed to write header", err)
		}
	}
	if len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := w.file.SetCellStyle(name, "A1", last, w.header); err != nil {
			return apperrors.NewStorageError("failed to style header", err)
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := w.file.SetCellValue(name, cell, cellValue(v)); err != nil {
				return apperrors.NewStorageError(fmt.Sprintf("failed to write %s!%s", name, cell), err)
			}
		}
	}
	return nil
}

// Save writes the workbook to path
func (w *Workbook) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}
	if err := w.file.SaveAs(path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

// Close releases the workbook
func (w *Workbook) Close() error {
	return w.file.Close()
}

// sheetName makes title a legal, unique sheet name
func (w *Workbook) sheetName(title string) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if base == "" {
		base = "Table"
	}
	base = truncateRunes(base, maxSheetName)

	name := base
	for n := 2; w.hasSheet(name); n++ {
		suffix := " " + strconv.Itoa(n)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	return name
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (w *Workbook) hasSheet(name string) bool {
	for _, s := range w.sheets {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func cellValue(v string) interface{} {
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return v
}
