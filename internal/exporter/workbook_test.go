package exporter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"blightcli/internal/analysis"
)

func TestWorkbook(t *testing.T) {
	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()

	require.NoError(t, wb.AddTable(analysis.Table{
		Title:   "Compliance Summary",
		Headers: []string{"compliance_label", "count", "percent"},
		Rows:    [][]string{{"Compliant", "2", "40.00"}, {"Non-Compliant", "3", "60.00"}},
	}))
	require.NoError(t, wb.AddTable(analysis.Table{
		Title:   "Hearing/Ticket [check]",
		Headers: []string{"row"},
		Rows:    [][]string{{"4"}},
	}))
	require.NoError(t, wb.AddTable(analysis.Table{Title: "Compliance Summary", Headers: []string{"x"}}))

	assert.Equal(t, []string{"Compliance Summary", "Hearing Ticket (check)", "Compliance Summary 2"}, wb.Sheets())

	path := filepath.Join(t.TempDir(), "reports", "eda.xlsx")
	require.NoError(t, wb.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, wb.Sheets(), f.GetSheetList())
	rows, err := f.GetRows("Compliance Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"compliance_label", "count", "percent"}, rows[0])
	assert.Equal(t, []string{"Non-Compliant", "3", "60"}, rows[2])
}

func TestWorkbook_SheetNames(t *testing.T) {
	wb, err := NewWorkbook()
	require.NoError(t, err)
	defer wb.Close()

	long := strings.Repeat("Frequency ", 5)
	require.NoError(t, wb.AddTable(analysis.Table{Title: long}))
	require.NoError(t, wb.AddTable(analysis.Table{Title: long}))
	require.NoError(t, wb.AddTable(analysis.Table{Title: "  "}))

	sheets := wb.Sheets()
	for _, s := range sheets {
		assert.LessOrEqual(t, len([]rune(s)), maxSheetName)
	}
	assert.True(t, strings.HasSuffix(sheets[1], " 2"))
	assert.Equal(t, "Table", sheets[2])
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 48208.0, cellValue("48208"))
	assert.Equal(t, "9-1-36(a)", cellValue("9-1-36(a)"))
	assert.Equal(t, "NaN", cellValue("NaN"))
	assert.Equal(t, "", cellValue(""))
}
