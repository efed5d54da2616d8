package visual

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blightcli/internal/analysis"
	apperrors "blightcli/internal/errors"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"compliance_label", "count"}, [][]string{
		{"Compliant", "11597"},
		{"Non-Compliant", "148283"},
	})

	out := buf.String()
	assert.Contains(t, out, "compliance_label", "headers are not upper-cased")
	assert.Contains(t, out, "Non-Compliant")
	assert.Contains(t, out, "148283")
	assert.Contains(t, out, "+")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, analysis.Table{Title: "Country", Headers: []string{"country", "count"}, Rows: [][]string{{"USA", "3"}}})

	assert.Contains(t, buf.String(), "Country\n")
	assert.Contains(t, buf.String(), "USA")
}

func assertImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBarPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures", "compliance.png")

	err := BarPlot(path, "Compliance Summary", []string{"Compliant", "Non-Compliant"}, []float64{11597, 148283})
	require.NoError(t, err)
	assertImage(t, path)
}

func TestBarPlot_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")

	err := BarPlot(path, "Mismatch", []string{"a"}, []float64{1, 2})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	err = BarPlot(path, "Empty", nil, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.NoFileExists(t, path)
}

func TestHistogram(t *testing.T) {
	dir := t.TempDir()

	values := []float64{305, 140, 855, math.NaN(), 250, 250, 1130}
	require.NoError(t, Histogram(filepath.Join(dir, "judgment.png"), "Judgment Amount", values, 10))
	assertImage(t, filepath.Join(dir, "judgment.png"))

	require.NoError(t, FreqDist(filepath.Join(dir, "inspector.png"), "Inspector Frequency", []float64{1, 4, 9, 16, 120}))
	assertImage(t, filepath.Join(dir, "inspector.png"))

	err := Histogram(filepath.Join(dir, "nan.png"), "Nothing", []float64{math.NaN()}, 10)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}
